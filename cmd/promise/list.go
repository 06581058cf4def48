package main

import (
	"fmt"

	"github.com/oukeidos/promise/internal/metadata"
	"github.com/oukeidos/promise/internal/quote"
	"github.com/oukeidos/promise/internal/style"
	"github.com/spf13/cobra"
)

type listOptions struct {
	models bool
	colors bool
}

func newListCmd() *cobra.Command {
	opts := listOptions{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories, models or preset colors",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			switch {
			case opts.models:
				fmt.Fprintln(out, "Gemini Models:")
				for _, m := range metadata.GeminiModels {
					marker := ""
					if m.ID == metadata.DefaultGeminiModel {
						marker = " (default)"
					}
					fmt.Fprintf(out, "  %-28s %s%s\n", m.ID, m.Label, marker)
				}
			case opts.colors:
				fmt.Fprintln(out, "Preset Colors:")
				for _, c := range style.Palette {
					fmt.Fprintf(out, "  %s\n", c)
				}
			default:
				fmt.Fprintln(out, "Categories (swipe order):")
				for _, c := range quote.Order {
					fmt.Fprintf(out, "  %-8s [%s]\n", c.Label(), c)
				}
			}
		},
	}
	cmd.Flags().BoolVar(&opts.models, "models", false, "List known Gemini models")
	cmd.Flags().BoolVar(&opts.colors, "colors", false, "List preset text colors")
	cmd.MarkFlagsMutuallyExclusive("models", "colors")
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}
