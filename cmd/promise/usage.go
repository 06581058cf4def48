package main

// Usage templates are assembled from these blocks so every command lists its
// flags the same way.
const (
	usageLine = `Usage:
  {{.UseLine}}
`
	usageCommandLine = `  {{.CommandPath}} [command]
`
	usageCommands = `{{if .HasAvailableSubCommands}}
Commands:
{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}  {{rpad .Name .NamePadding }} {{.Short}}
{{end}}{{end}}{{end}}`
	usageExamples = `{{if .HasExample}}
Examples:
{{.Example}}
{{end}}`
	usageLocalFlags = `{{if .HasAvailableLocalFlags}}
Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}
{{end}}`
	usageGlobalFlags = `{{if .HasAvailableInheritedFlags}}
Global Flags:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}
{{end}}`
	usageMore = `{{if .HasAvailableSubCommands}}
Use "{{.CommandPath}} [command] --help" for more information about a command.
{{end}}`
)

const subcommandUsageTemplate = usageLine + usageExamples + usageLocalFlags + usageGlobalFlags

const rootUsageTemplate = usageLine + `{{if .HasAvailableSubCommands}}` + usageCommandLine + `{{end}}` +
	usageCommands + usageExamples + usageLocalFlags + `
In the tui, drag left or right to change category, drag down to refresh and
double-click to leave lock mode.
` + usageMore

const groupUsageTemplate = usageLine + usageCommandLine + usageCommands + usageGlobalFlags

const envUsageTemplate = groupUsageTemplate + `
Keys are looked up in the keychain first, then in GEMINI_API_KEY and API_KEY.
`
