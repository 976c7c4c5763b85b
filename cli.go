package main

import (
	"os"
	"path/filepath"

	"github.com/integrii/flaggy"
)

var (
	flagHelp        bool
	flagNoColor     bool
	flagNoClearClip bool
	flagFile        string
	flagListName    string
)

var versionCmd = flaggy.NewSubcommand("version")

func parseCli() {
	defaultFilePath := ".basket"
	homeDir, err := os.UserHomeDir()
	if err == nil && len(homeDir) != 0 {
		defaultFilePath = filepath.Join(homeDir, defaultFilePath)
	}
	flagFile = defaultFilePath
	flagListName = "list"

	parser := flaggy.NewParser("basket")
	parser.Bool(&flagNoColor, "", "no-color", "Turn off color output")
	parser.Bool(&flagNoClearClip, "", "no-clear-clip", "Do not clear clipboard on exit")
	parser.Bool(&flagHelp, "h", "help", "Show help")
	parser.String(&flagFile, "f", "file", "The list file to open (can be set by $BASKET)")
	parser.String(&flagListName, "n", "name", "Name for a newly created list")

	versionCmd.Description = "print version and exit"

	parser.AdditionalHelpAppend = "basket respects $BASKET and $EDITOR env vars"

	parser.ShowHelpWithHFlag = false
	parser.ShowHelpOnUnexpected = false

	parser.DisableShowVersionWithVersion()
	if err := parser.SetHelpTemplate(helpTemplate); err != nil {
		// This should never occur
		panic(err)
	}

	parser.AttachSubcommand(versionCmd, 1)
	parser.Parse()

	if flagFile == defaultFilePath {
		envFile := os.Getenv("BASKET")
		if len(envFile) != 0 {
			flagFile = envFile
		}
	}

	if flagHelp {
		parser.ShowHelp()
		os.Exit(0)
	}
}

var helpTemplate = `Usage:
  {{.CommandName}} [flags]{{if .Subcommands}} [command]{{end}}
{{- if .Subcommands}}

Commands:
  {{range .Subcommands -}}
  {{.LongName}}
  {{end -}}
{{- end}}
{{- if .Flags}}
Flags:
  {{- range .Flags}}
  {{if .ShortName}}-{{.ShortName}}{{if .LongName}}, {{else}}  {{end}}{{else}}    {{end}}{{printf "--%-15s" .LongName}}
  {{- if .Description}} {{.Description}}{{end}}
  {{- if and (.DefaultValue) (not (eq "false" .DefaultValue))}} ({{.DefaultValue}}){{end}}
  {{- end -}}
{{- end}}{{if .AppendMessage}}

{{.AppendMessage}}
{{- end}}
`
