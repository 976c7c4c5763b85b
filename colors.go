package main

import "github.com/gookit/color"

var (
	errColor    = color.FgBrightRed
	infoColor   = color.FgBrightMagenta
	promptColor = color.FgYellow
	valueColor  = color.FgBrightGreen
	doneColor   = color.FgBrightBlack
	idColor     = color.FgBlue
)
