package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/andareed/siftly-chart/interact"
	"github.com/andareed/siftly-chart/money"
)

// Colors holds CSS colour strings keyed the way chart themes name them.
type Colors struct {
	Above              string `yaml:"above"`
	Below              string `yaml:"below"`
	BarChart           string `yaml:"barChart"`
	Tooltip            string `yaml:"tooltip"`
	TooltipDate        string `yaml:"tooltipDate"`
	TooltipTime        string `yaml:"tooltipTime"`
	TooltipData        string `yaml:"tooltipData"`
	XLabel             string `yaml:"xLabel"`
	YLabel             string `yaml:"yLabel"`
	OpenLabel          string `yaml:"openLabel"`
	MinChartLine       string `yaml:"minChartLine"`
	MinChartBackground string `yaml:"minChartBackground"`
	Slide              string `yaml:"slide"`
	Background         string `yaml:"background"`
}

// Tuning holds the interaction thresholds. They were tuned by hand and are
// kept configurable.
type Tuning struct {
	Radius       float64 `yaml:"radius"`
	GuardBand    int     `yaml:"guard_band"`
	EdgeMargin   int     `yaml:"edge_margin"`
	MinWindow    int     `yaml:"min_window"`
	HoldSpanDays int     `yaml:"hold_span_days"`
}

// Config holds all application configuration.
type Config struct {
	Colors         Colors  `yaml:"colors"`
	// Font applies to exported images: a .ttf path or a family name. The
	// terminal keeps its own font.
	Font           string  `yaml:"font"`
	Currency       string  `yaml:"currency"`
	Tuning         Tuning  `yaml:"tuning"`
	OverviewAspect float64 `yaml:"overview_aspect"`
	ExportDir      string  `yaml:"export_dir"`
}

func defaultColors() Colors {
	return Colors{
		Above:              "rgb(106, 173, 56)",
		Below:              "rgb(255, 63, 63)",
		BarChart:           "#ccc",
		Tooltip:            "rgb(102, 102, 102)",
		TooltipDate:        "white",
		TooltipTime:        "lightgrey",
		TooltipData:        "lightgrey",
		XLabel:             "rgb(102, 102, 102)",
		YLabel:             "rgb(102, 102, 102)",
		OpenLabel:          "rgba(102, 102, 102, 0.7)",
		MinChartLine:       "rgb(54, 162, 235)",
		MinChartBackground: "rgba(54, 162, 235, 0.2)",
		Slide:              "rgba(54, 162, 235, 0.4)",
		Background:         "white",
	}
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads config from a YAML file, then applies .env and environment
// variable overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// .env never overrides variables already set in the environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	// Environment variable overrides
	if v := os.Getenv("SIFTLY_CHART_CURRENCY"); v != "" {
		cfg.Currency = v
	}
	if v := os.Getenv("SIFTLY_CHART_FONT"); v != "" {
		cfg.Font = v
	}
	if v := os.Getenv("SIFTLY_CHART_EXPORT_DIR"); v != "" {
		cfg.ExportDir = v
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	d := defaultColors()
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&c.Colors.Above, d.Above)
	fill(&c.Colors.Below, d.Below)
	fill(&c.Colors.BarChart, d.BarChart)
	fill(&c.Colors.Tooltip, d.Tooltip)
	fill(&c.Colors.TooltipDate, d.TooltipDate)
	fill(&c.Colors.TooltipTime, d.TooltipTime)
	fill(&c.Colors.TooltipData, d.TooltipData)
	fill(&c.Colors.XLabel, d.XLabel)
	fill(&c.Colors.YLabel, d.YLabel)
	fill(&c.Colors.OpenLabel, d.OpenLabel)
	fill(&c.Colors.MinChartLine, d.MinChartLine)
	fill(&c.Colors.MinChartBackground, d.MinChartBackground)
	fill(&c.Colors.Slide, d.Slide)
	fill(&c.Colors.Background, d.Background)

	fill(&c.Font, "sans-serif")
	fill(&c.Currency, "USD")
	fill(&c.ExportDir, ".")

	def := interact.DefaultTuning()
	if c.Tuning.Radius == 0 {
		c.Tuning.Radius = def.Radius
	}
	if c.Tuning.GuardBand == 0 {
		c.Tuning.GuardBand = def.GuardBand
	}
	if c.Tuning.EdgeMargin == 0 {
		c.Tuning.EdgeMargin = def.EdgeMargin
	}
	if c.Tuning.MinWindow == 0 {
		c.Tuning.MinWindow = def.MinWindow
	}
	if c.Tuning.HoldSpanDays == 0 {
		c.Tuning.HoldSpanDays = int(def.HoldSpan / (24 * time.Hour))
	}
	if c.OverviewAspect == 0 {
		c.OverviewAspect = 10
	}
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	if _, err := c.Palette(); err != nil {
		return err
	}
	if _, err := money.New(c.Currency); err != nil {
		return fmt.Errorf("currency: %w", err)
	}
	if c.Tuning.Radius < 0 {
		return fmt.Errorf("tuning.radius must not be negative")
	}
	if c.Tuning.GuardBand < 0 {
		return fmt.Errorf("tuning.guard_band must not be negative")
	}
	if c.Tuning.EdgeMargin < 1 {
		return fmt.Errorf("tuning.edge_margin must be at least 1")
	}
	if c.Tuning.MinWindow < 1 {
		return fmt.Errorf("tuning.min_window must be at least 1")
	}
	if c.Tuning.HoldSpanDays < 0 {
		return fmt.Errorf("tuning.hold_span_days must not be negative")
	}
	if strings.EqualFold(filepath.Ext(c.Font), ".ttf") {
		if _, err := os.Stat(c.Font); err != nil {
			return fmt.Errorf("font: %w", err)
		}
	}
	if c.OverviewAspect <= 0 {
		return fmt.Errorf("overview_aspect must be positive")
	}
	return nil
}

// Interact converts the tuning section to controller thresholds.
func (t Tuning) Interact() interact.Tuning {
	return interact.Tuning{
		Radius:     t.Radius,
		GuardBand:  t.GuardBand,
		EdgeMargin: t.EdgeMargin,
		MinWindow:  t.MinWindow,
		HoldSpan:   time.Duration(t.HoldSpanDays) * 24 * time.Hour,
	}
}
