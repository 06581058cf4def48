package main

import (
	"fmt"

	"github.com/oukeidos/promise/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(g *globalOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ResolvePath(g.configPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "path:            %s\n", path)
			fmt.Fprintf(out, "model:           %s\n", g.cfg.Model)
			fmt.Fprintf(out, "log_level:       %s\n", g.cfg.LogLevel)
			fmt.Fprintf(out, "allow_env:       %v\n", g.cfg.AllowEnv)
			fmt.Fprintf(out, "image_base_url:  %s\n", g.cfg.ImageBaseURL)
			fmt.Fprintf(out, "request_timeout: %s\n", describeTimeout(g))
			fmt.Fprintf(out, "category:        %s\n", g.cfg.Category.Label())
			return nil
		},
	}
	cmd.SetUsageTemplate(groupUsageTemplate)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.WriteDefault(g.configPath, force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	initCmd.SetUsageTemplate(subcommandUsageTemplate)
	cmd.AddCommand(initCmd)
	return cmd
}

func describeTimeout(g *globalOptions) string {
	if g.cfg.RequestTimeout == 0 {
		return "none"
	}
	return g.cfg.RequestTimeout.String()
}
