package main

import "github.com/charmbracelet/lipgloss"

const (
	footerBarBGColor    = "#2b2b2b"
	footerStatusBGColor = "#000000"
	modePillBGColor     = "#ff9f1c"
	dragPillBGColor     = "#36a2eb"
	modePillFGColor     = "#000000"
	fileNameFGColor     = "#e0e0e0"
	footerTextFGColor   = "#cfcfcf"
	footerDimFGColor    = "#a0a0a0"
	statusFGColor       = "#9a9a9a"
	legendFGColor       = "#b0b0b0"
)

var loadingStyle = lipgloss.NewStyle().Faint(true).Padding(1, 2)
