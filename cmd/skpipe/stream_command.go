package main

import (
	"github.com/spf13/cobra"

	"skpipe/internal/config"
	"skpipe/internal/pipeline"
	"skpipe/internal/product"
)

func newStreamCommand(ctx *commandContext) *cobra.Command {
	var (
		out     string
		mFlag   int
		nFlag   int
		dFlag   float64
		pfaFlag float64
		start   int
		nsMax   int
	)

	cmd := &cobra.Command{
		Use:   "stream <rawfile>",
		Short: "Reduce a raw spectrogram into block power sums and SK flags",
		Long: "Reads a raw dual-polarization spectrogram in non-overlapping blocks of M\n" +
			"spectra, computes per-channel power moment sums and spectral-kurtosis\n" +
			"flags for both polarizations, and writes the SK-stream product.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := ctx.cfg.Stream
			f := cmd.Flags()
			if f.Changed("M") {
				sc.M = mFlag
			}
			if f.Changed("N") {
				sc.N = nFlag
			}
			if f.Changed("d") {
				sc.D = dFlag
			}
			if f.Changed("pfa") {
				sc.PFA = pfaFlag
			}
			if f.Changed("start") {
				sc.Start = start
			}
			if f.Changed("ns-max") {
				sc.MaxSamples = nsMax
			}

			outPath := out
			if outPath == "" {
				outPath = product.DefaultStreamPath(args[0], ".")
			}

			return pipeline.RunStream(args[0], outPath, pipeline.StreamOptions{
				Params:     sc.Params(),
				Start:      sc.Start,
				MaxSamples: sc.MaxSamples,
			})
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default: <base>_skstream.skp)")
	cmd.Flags().IntVar(&mFlag, "M", config.DefaultM, "Time samples per SK block")
	cmd.Flags().IntVar(&nFlag, "N", config.DefaultN, "Gamma shape parameter N")
	cmd.Flags().Float64Var(&dFlag, "d", config.DefaultD, "Gamma scale parameter d")
	cmd.Flags().Float64Var(&pfaFlag, "pfa", config.DefaultPFA, "One-sided probability of false alarm")
	cmd.Flags().IntVar(&start, "start", 0, "0-based starting time sample")
	cmd.Flags().IntVar(&nsMax, "ns-max", 0, "Maximum time samples to process (0 = all)")

	return cmd
}
