package main

import (
	"github.com/spf13/cobra"

	"skpipe/internal/config"
	"skpipe/internal/log"
)

// commandContext carries the persistent flags and the loaded
// configuration into the subcommands.
type commandContext struct {
	configPath string
	debug      bool
	cfg        config.Config
}

func (c *commandContext) setup() error {
	if err := log.Init(c.debug); err != nil {
		return err
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "skpipe",
		Short:         "Spectral-kurtosis RFI excision pipeline for dual-polarization spectrograms",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return ctx.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&ctx.configPath, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().BoolVar(&ctx.debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(newStreamCommand(ctx))
	rootCmd.AddCommand(newCleanCommand(ctx))
	rootCmd.AddCommand(newInspectCommand(ctx))
	rootCmd.AddCommand(newSynthCommand(ctx))

	return rootCmd
}
