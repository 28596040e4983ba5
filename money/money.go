package money

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var ErrUnknownCurrency = errors.New("unknown ISO 4217 currency code")

// compactUnits is ordered from the smallest scale up.
var compactUnits = []struct {
	scale  float64
	suffix string
}{
	{1, ""},
	{1e3, "K"},
	{1e6, "M"},
	{1e9, "B"},
	{1e12, "T"},
}

// Formatter renders amounts in one currency using en-US digit grouping.
type Formatter struct {
	unit    currency.Unit
	symbol  string
	printer *message.Printer
}

// New returns a formatter for an ISO 4217 code such as "USD".
func New(code string) (*Formatter, error) {
	unit, err := currency.ParseISO(strings.TrimSpace(code))
	if err != nil {
		return nil, fmt.Errorf("%q: %w", code, ErrUnknownCurrency)
	}
	p := message.NewPrinter(language.AmericanEnglish)
	return &Formatter{
		unit:    unit,
		symbol:  p.Sprint(currency.NarrowSymbol(unit)),
		printer: p,
	}, nil
}

// Code returns the ISO code, e.g. "USD".
func (f *Formatter) Code() string { return f.unit.String() }

func (f *Formatter) Symbol() string { return f.symbol }

// Price formats v with exactly two fraction digits: $1,234.50.
func (f *Formatter) Price(v float64) string {
	return f.sign(v) + f.symbol + f.decimal(math.Abs(v), 2, 2)
}

// Compact formats v in compact notation with two fraction digits: $1.23M.
func (f *Formatter) Compact(v float64) string {
	scaled, suffix, _ := compact(math.Abs(v), func(float64) int { return 2 })
	return f.sign(v) + f.symbol + f.decimal(scaled, 2, 2) + suffix
}

// Axis formats v for tick labels: compact, two significant digits below ten
// and no fraction digits above: $1.5K, $30K, $120K.
func (f *Formatter) Axis(v float64) string {
	scaled, suffix, digits := compact(math.Abs(v), func(scaled float64) int {
		if scaled < 10 && scaled != math.Trunc(scaled) {
			return 1
		}
		return 0
	})
	return f.sign(v) + f.symbol + f.decimal(scaled, 0, digits) + suffix
}

func (f *Formatter) decimal(v float64, min, max int) string {
	return f.printer.Sprint(number.Decimal(v,
		number.MinFractionDigits(min),
		number.MaxFractionDigits(max),
	))
}

func (f *Formatter) sign(v float64) string {
	if v < 0 {
		return "-"
	}
	return ""
}

// compact scales v to the largest unit not above it and rounds it to the
// fraction digits chosen for the scaled value. A value that rounds up to 1000
// moves to the next unit: 999,999.5 is 1.00M, not 1,000.00K.
func compact(v float64, digits func(scaled float64) int) (float64, string, int) {
	i := 0
	for i+1 < len(compactUnits) && v >= compactUnits[i+1].scale {
		i++
	}
	for {
		scaled := v / compactUnits[i].scale
		d := digits(scaled)
		p := math.Pow10(d)
		rounded := math.Round(scaled*p) / p
		if rounded >= 1000 && i+1 < len(compactUnits) {
			i++
			continue
		}
		return rounded, compactUnits[i].suffix, d
	}
}
