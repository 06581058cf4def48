package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/oukeidos/promise/internal/metadata"
	"github.com/oukeidos/promise/internal/version"
	"github.com/spf13/cobra"
)

const projectURL = "https://github.com/oukeidos/promise"

var credits = [][2]string{
	{"Quotes", "Google Gemini (" + metadata.DefaultGeminiModel + " by default)"},
	{"Backgrounds", "pollinations.ai"},
	{"Offline", "one built-in quote per category"},
}

func newAboutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "about",
		Short: "Show where quotes and backgrounds come from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s: daily strength for athletes, stoics and believers\n\n", version.Name, version.Version)
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, c := range credits {
				fmt.Fprintf(tw, "%s\t%s\n", c[0], c[1])
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "\n%s\n", projectURL)
			return nil
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}
