package main

import "github.com/fatih/color"

// Colors for plain CLI output. color disables itself when stdout is not a
// terminal or NO_COLOR is set.
var (
	colorTitle  = color.New(color.FgYellow, color.Bold)
	colorHeader = color.New(color.FgHiBlue)
	colorBest   = color.New(color.FgGreen)
	colorHint   = color.New(color.FgHiBlack)
)
