package main

import (
	"fmt"
	"image/png"
	"io"
	"os"

	"github.com/oukeidos/promise/internal/background"
	"github.com/oukeidos/promise/internal/files"
	"github.com/oukeidos/promise/internal/httpclient"
	"github.com/spf13/cobra"
)

type backgroundOptions struct {
	out    string
	yes    bool
	unique bool
}

func newBackgroundCmd(g *globalOptions) *cobra.Command {
	opts := backgroundOptions{}
	cmd := &cobra.Command{
		Use:   "background",
		Short: "Download a fresh background and save it as PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackground(cmd, g, &opts)
		},
	}
	cmd.Flags().StringVarP(&opts.out, "out", "o", "background.png", "Output PNG path")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Overwrite the output file without asking")
	cmd.Flags().BoolVar(&opts.unique, "unique", false, "Pick a new file name instead of overwriting")
	cmd.MarkFlagsMutuallyExclusive("yes", "unique")
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

func runBackground(cmd *cobra.Command, g *globalOptions, opts *backgroundOptions) error {
	out := opts.out
	if opts.unique {
		p, changed, err := files.SafePath(out)
		if err != nil {
			return err
		}
		if changed {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s exists, writing %s instead\n", out, p)
		}
		out = p
	} else if _, err := os.Stat(out); err == nil {
		ok, err := confirmer.ConfirmOverwrite(out, opts.yes)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
	}

	ctx, stop := signalContext()
	defer stop()

	p := background.New(background.Options{
		BaseURL:     g.cfg.ImageBaseURL,
		Client:      httpclient.NewClient(g.cfg.RequestTimeout),
		CommitDelay: -1,
	})
	if err := p.LoadSync(ctx); err != nil {
		return err
	}
	st := p.State()

	err := files.AtomicWriteFunc(out, 0o644, func(w io.Writer) error {
		return png.Encode(w, st.Image)
	})
	if err != nil {
		return fmt.Errorf("save background: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\nsource: %s\n", out, st.CurrentURL)
	return nil
}
