package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// keySource says where a Gemini key would come from on the next run.
type keySource int

const (
	keyNone keySource = iota
	keyKeychain
	keyEnv
	keyEnvIgnored
)

func (s keySource) String() string {
	switch s {
	case keyKeychain:
		return "Found (source=Keychain)"
	case keyEnv:
		return "Found (source=Environment Variable)"
	case keyEnvIgnored:
		return "Found (source=Environment Variable; ignored, allow_env is off)"
	default:
		return "Not Found (built-in quotes only)"
	}
}

func lookupKeySource(allowEnv bool) keySource {
	if hasStoredKey() {
		return keyKeychain
	}
	if _, ok := getEnvKey(); !ok {
		return keyNone
	}
	if allowEnv {
		return keyEnv
	}
	return keyEnvIgnored
}

var errKeyRequired = errors.New("API key is required for setup")

func newEnvCmd(g *globalOptions) *cobra.Command {
	var yes bool
	status := func(cmd *cobra.Command, _ []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "Gemini API Key: %s\n", lookupKeySource(g.cfg.AllowEnv))
		return nil
	}

	cmd := &cobra.Command{
		Use:   "env",
		Short: "Manage the Gemini API key in the OS keychain",
		Args:  cobra.NoArgs,
		RunE:  status,
	}
	cmd.SetUsageTemplate(envUsageTemplate)

	subs := []*cobra.Command{
		{
			Use:   "setup",
			Short: "Prompt for a key and save it to the keychain",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return setupKey(cmd.OutOrStdout())
			},
		},
		{
			Use:   "delete",
			Short: "Remove the key from the keychain",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return removeKey(cmd.OutOrStdout(), yes)
			},
		},
		{
			Use:   "status",
			Short: "Show where the key comes from (default action)",
			Args:  cobra.NoArgs,
			RunE:  status,
		},
	}
	subs[1].Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	for _, sub := range subs {
		sub.SetUsageTemplate(subcommandUsageTemplate)
		cmd.AddCommand(sub)
	}
	return cmd
}

func setupKey(out io.Writer) error {
	key, err := promptForKey("Gemini API Key: ")
	switch {
	case err != nil:
		return fmt.Errorf("error reading key: %w", err)
	case key == "":
		return errKeyRequired
	}
	if err := saveKey(key); err != nil {
		return fmt.Errorf("error saving key: %w", err)
	}
	fmt.Fprintln(out, "Saved Gemini API key to keychain.")
	return nil
}

func removeKey(out io.Writer, yes bool) error {
	if !hasStoredKey() {
		fmt.Fprintln(out, "No Gemini API key stored in keychain.")
		return nil
	}
	ok, err := confirmer.Confirm("Delete the stored Gemini API key?", yes)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(out, "Aborted.")
		return nil
	}
	if err := deleteKey(); err != nil {
		return fmt.Errorf("error deleting key: %w", err)
	}
	fmt.Fprintln(out, "Deleted Gemini API key from keychain.")
	return nil
}
