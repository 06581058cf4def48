package main

import (
	"fmt"
	"os"

	"github.com/oukeidos/promise/internal/cleanup"
	"github.com/oukeidos/promise/internal/session"
	"github.com/oukeidos/promise/internal/share"
	"github.com/oukeidos/promise/internal/version"
	"github.com/spf13/cobra"
)

func execute() {
	cmd := newRootCmd()
	err := cmd.Execute()
	if cleanupErr := cleanup.RunAll(); cleanupErr != nil {
		fmt.Fprintln(os.Stderr, cleanupErr)
		if err == nil {
			err = cleanupErr
		}
	}
	if err != nil {
		os.Exit(1)
	}
}

type quoteOptions struct {
	category categoryFlag
	copy     bool
}

func newRootCmd() *cobra.Command {
	g := &globalOptions{}
	opts := quoteOptions{}

	cmd := &cobra.Command{
		Use:   "promise",
		Short: "Prayer & Promise: daily strength on your lock screen",
		Example: `  promise -c stoic
  promise --copy --no-prompt
  promise tui -c prayer
  promise background -o lock.png --unique`,
		Args: cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuote(cmd, g, &opts)
		},
		SilenceUsage: true,
	}

	cmd.Version = version.Info()
	cmd.SetVersionTemplate("{{.Version}}\n")
	cmd.SetUsageTemplate(rootUsageTemplate)

	g.bind(cmd)
	addCategoryFlag(cmd.Flags(), &opts.category)
	cmd.Flags().BoolVar(&opts.copy, "copy", false, "Copy the quote to the clipboard in share format")

	cmd.AddCommand(
		newAboutCmd(),
		newListCmd(),
		newBackgroundCmd(g),
		newTUICmd(g),
		newConfigCmd(g),
		newEnvCmd(g),
	)

	cmd.InitDefaultCompletionCmd()
	for _, sub := range cmd.Commands() {
		if sub.Name() == "completion" {
			sub.SetUsageTemplate(subcommandUsageTemplate)
			break
		}
	}

	return cmd
}

func runQuote(cmd *cobra.Command, g *globalOptions, opts *quoteOptions) error {
	cat := opts.category.or(g.cfg.Category)

	ctx, stop := signalContext()
	defer stop()

	src, err := newQuoteSource(ctx, g)
	if err != nil {
		return err
	}
	ctrl := session.New(session.Options{
		Quotes:    src,
		Clipboard: clipboardTarget,
		Notifier:  share.WriterNotifier{W: cmd.ErrOrStderr()},
		Initial:   cat,
	})
	ctrl.Start(ctx)
	ctrl.Wait()

	snap := ctrl.Snapshot()
	if snap.Status != session.StatusSuccess {
		return fmt.Errorf("could not load a quote: %s", snap.Err)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n\n\"%s\"\n— %s\n", snap.Category.Label(), snap.Quote.Text, snap.Quote.Reference)

	if opts.copy {
		ctrl.Share()
	}
	return nil
}
