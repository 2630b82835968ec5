package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/bvz2000/bvzgo/pkg/framespec"
)

func newSeqCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seq",
		Short: "expand frame-sequence and UDIM patterns",
	}

	var padding int

	expand := &cobra.Command{
		Use:   "expand <pattern>",
		Short: "expand a framespec pattern into file names (no disk access)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := framespec.ExpandFrameSequence(args[0], padding)
			if err != nil {
				return err
			}
			for _, file := range files {
				fmt.Fprintln(cmd.OutOrStdout(), file)
			}
			return nil
		},
	}
	expand.Flags().IntVar(&padding, "padding", framespec.PadNone,
		"digit padding (0 none, -1 widest frame, n explicit)")

	var opts framespec.ExpandOptions

	files := &cobra.Command{
		Use:   "files <pattern>",
		Short: "list the files on disk matching a sequence pattern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			found, missing, err := framespec.ExpandFiles(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			for _, file := range found {
				fmt.Fprintln(cmd.OutOrStdout(), file)
			}
			if len(missing) > 0 {
				pterm.Warning.Printfln("missing frames: %v", missing)
			}
			return nil
		},
	}
	ff := files.Flags()
	ff.IntVar(&opts.Padding, "padding", framespec.PadNone,
		"digit padding (0 none, -1 widest frame, n explicit)")
	ff.StringVar(&opts.UDIMIdentifier, "udim", framespec.DefaultUDIMIdentifier,
		"UDIM identifier to look for")
	ff.BoolVar(&opts.LooseUDIM, "loose-udim", false,
		"allow trailing characters after the UDIM digits")
	ff.BoolVar(&opts.MatchHashLength, "match-hash-length", false,
		"a run of # must match the digit count exactly")

	cmd.AddCommand(expand, files)
	return cmd
}
