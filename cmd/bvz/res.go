package main

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/bvz2000/bvzgo/pkg/resources"
)

func newResCmd() *cobra.Command {
	var (
		dir    string
		prefix string
		lang   string
	)

	cmd := &cobra.Command{
		Use:   "res",
		Short: "look up localized strings in a resources file",
	}
	pf := cmd.PersistentFlags()
	pf.StringVar(&dir, "dir", ".", "directory holding the resource files")
	pf.StringVar(&prefix, "prefix", "", "resource file prefix")
	pf.StringVar(&lang, "lang", "en", "language tag to look up")
	_ = cmd.MarkPersistentFlagRequired("prefix")

	load := func(cmd *cobra.Command) (*resources.Resources, error) {
		return resources.Match(cmd.Context(), dir, prefix, lang)
	}

	message := &cobra.Command{
		Use:   "message <key>",
		Short: "print a message from the [messages] section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resc, err := load(cmd)
			if err != nil {
				return err
			}
			msg, err := resc.Message(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}

	errCmd := &cobra.Command{
		Use:   "err <code>",
		Short: "print a coded error from the [error_codes] section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("error code must be a number: %q", args[0])
			}
			resc, err := load(cmd)
			if err != nil {
				return err
			}
			coded, err := resc.ErrorCode(code)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d: %s\n", coded.Code, coded.Msg)
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show <section>",
		Short: "dump a resource section as a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resc, err := load(cmd)
			if err != nil {
				return err
			}
			items, err := resc.Items(args[0])
			if err != nil {
				return err
			}

			data := pterm.TableData{{"Key", "Value"}}
			for _, item := range items {
				data = append(data, []string{item.Key, item.Value})
			}
			return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
		},
	}

	cmd.AddCommand(message, errCmd, show)
	return cmd
}
