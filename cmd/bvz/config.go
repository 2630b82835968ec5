package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bvz2000/bvzgo/pkg/config"
	"github.com/bvz2000/bvzgo/pkg/log"
)

// configEnvVar names the env var consulted when --config is not given.
const configEnvVar = "BVZ_CONFIG"

func newConfigCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "read and write ini config files",
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"config file path (falls back to $"+configEnvVar+")")

	get := &cobra.Command{
		Use:   "get <section> <key>",
		Short: "print the value of a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Context(), configPath, configEnvVar)
			if err != nil {
				return err
			}
			value, err := cfg.GetString(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set <section> <key> <value>",
		Short: "set a key and write the file back",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Context(), configPath, configEnvVar)
			if err != nil {
				return err
			}
			cfg.Set(args[0], args[1], args[2])
			if err := cfg.Save(); err != nil {
				return err
			}
			log.FromContext(cmd.Context()).Successf("wrote %s", cfg.Path())
			return nil
		},
	}

	sections := &cobra.Command{
		Use:   "sections",
		Short: "list the sections of the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Context(), configPath, configEnvVar)
			if err != nil {
				return err
			}
			for _, section := range cfg.Sections() {
				fmt.Fprintln(cmd.OutOrStdout(), section)
			}
			return nil
		},
	}

	cmd.AddCommand(get, set, sections)
	return cmd
}
