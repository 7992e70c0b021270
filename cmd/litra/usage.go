package main

// Shared tail of every usage screen: commands, flags, help hint.
const usageTail = `
{{if .HasAvailableSubCommands}}Commands:
{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}  {{rpad .Name .NamePadding }} {{.Short}}
{{end}}{{end}}{{end}}
{{if .HasAvailableLocalFlags}}Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}
{{end}}
{{if .HasAvailableInheritedFlags}}Global Flags:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}
{{end}}
{{if .HasAvailableSubCommands}}Use "{{.CommandPath}} [command] --help" for more information about a command.
{{end}}`

const subcommandUsageTemplate = `Usage:
  {{.UseLine}}
  litra [command]
` + usageTail

// The root usage leads with the bare two-file form, which is how the
// tool is normally invoked.
const rootUsageTemplate = `Usage:
  litra <input.txt> <output.txt> [flags]
  {{.UseLine}}
{{if .HasAvailableSubCommands}}  {{.CommandPath}} [command]
{{end}}` + usageTail

const envUsageTemplate = `Usage:
  {{.UseLine}}
  {{.CommandPath}} [command]
` + usageTail
