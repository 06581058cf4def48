package main

import (
	"github.com/oukeidos/promise/internal/background"
	"github.com/oukeidos/promise/internal/httpclient"
	"github.com/oukeidos/promise/internal/quote"
	"github.com/oukeidos/promise/internal/session"
	"github.com/oukeidos/promise/internal/tui"
	"github.com/spf13/cobra"
)

var runTUI = tui.Run

func newTUICmd(g *globalOptions) *cobra.Command {
	var cat categoryFlag
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the full-screen widget in the terminal",
		Long: `Run the full-screen widget in the terminal.

Drag with the mouse (or use the arrow keys) to swipe between categories and
pull down (or press r) to refresh. Press L for lock mode and tap twice
(space or click) to leave it. Press ? for all shortcuts.`,
		Args: cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			g.quiet = true
			return g.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWidget(cmd, g, cat.or(g.cfg.Category))
		},
	}
	addCategoryFlag(cmd.Flags(), &cat)
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

func runWidget(cmd *cobra.Command, g *globalOptions, initial quote.Category) error {
	ctx, stop := signalContext()
	defer stop()

	src, err := newQuoteSource(ctx, g)
	if err != nil {
		return err
	}
	bg := background.New(background.Options{
		BaseURL: g.cfg.ImageBaseURL,
		Client:  httpclient.NewClient(g.cfg.RequestTimeout),
	})
	notices := tui.NewNotifier()
	ctrl := session.New(session.Options{
		Quotes:     src,
		Background: bg,
		Clipboard:  clipboardTarget,
		Notifier:   notices,
		Initial:    initial,
	})
	ctrl.Start(ctx)

	err = runTUI(tui.Options{
		Context:    ctx,
		Controller: ctrl,
		Notifier:   notices,
	})
	stop()
	ctrl.Wait()
	bg.Wait()
	return err
}
