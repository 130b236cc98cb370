package main

import (
	"github.com/spf13/cobra"

	"skpipe/internal/config"
	"skpipe/internal/pipeline"
	"skpipe/internal/rfi"
)

func newCleanCommand(ctx *commandContext) *cobra.Command {
	var (
		out      string
		outDir   string
		fBlock   int
		flagMode string
	)

	cmd := &cobra.Command{
		Use:   "clean <skfile>",
		Short: "RFI-clean an SK-stream product by masked frequency-block integration",
		Long: "Builds good-channel masks from the SK flags of an SK-stream product,\n" +
			"combines them across polarizations according to --flag-mode, and\n" +
			"integrates the unmasked power into frequency blocks of --F-block channels.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := ctx.cfg.Clean
			f := cmd.Flags()
			if f.Changed("F-block") {
				cc.FBlock = fBlock
			}
			if f.Changed("flag-mode") {
				cc.FlagMode = flagMode
			}

			policy, err := rfi.ParsePolicy(cc.FlagMode)
			if err != nil {
				return err
			}

			return pipeline.RunClean(args[0], out, pipeline.CleanOptions{
				FBlock: cc.FBlock,
				Policy: policy,
				OutDir: outDir,
			})
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default: auto-named in --out-dir)")
	cmd.Flags().StringVar(&outDir, "out-dir", ".", "Directory for the auto-named output file")
	cmd.Flags().IntVar(&fBlock, "F-block", config.DefaultFBlock, "Frequency block size for integration")
	cmd.Flags().StringVar(&flagMode, "flag-mode", config.DefaultFlagMode, "Flag combination: separate, or, and")

	return cmd
}
