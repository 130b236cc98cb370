package main

import (
	"github.com/spf13/cobra"

	"skpipe/internal/log"
	"skpipe/internal/product"
	"skpipe/internal/synth"
)

func newSynthCommand(ctx *commandContext) *cobra.Command {
	var (
		out         string
		samples     int
		channels    int
		seed        uint64
		rfiChannels []int
		rfiPower    float64
		burstStart  int
		burstLen    int
		burstPower  float64
	)

	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Generate a synthetic dual-polarization spectrogram segment",
		Long: "Writes a raw container of gamma-distributed noise power, optionally with\n" +
			"persistent narrowband carriers and an impulsive broadband burst, for\n" +
			"exercising the stream and clean stages end to end.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sp := synth.Generate(synth.Options{
				Samples:     samples,
				Channels:    channels,
				StartFreqHz: 30e6,
				ChanWidthHz: 24e3,
				SampleDt:    0.1,
				N:           ctx.cfg.Stream.N,
				D:           ctx.cfg.Stream.D,
				Seed:        seed,
				RFIChannels: rfiChannels,
				RFIPower:    rfiPower,
				BurstStart:  burstStart,
				BurstLen:    burstLen,
				BurstPower:  burstPower,
			})

			overwrote, err := product.WriteRaw(out, sp)
			if overwrote {
				log.Warnf("overwriting existing output file: %s", out)
			}
			if err != nil {
				return err
			}
			log.Infof("synthetic segment written to: %s (ns=%d, nf=%d)", out, samples, channels)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "segment"+product.Ext, "Output file")
	cmd.Flags().IntVar(&samples, "samples", 4096, "Time samples to generate")
	cmd.Flags().IntVar(&channels, "channels", 256, "Frequency channels to generate")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "Random seed")
	cmd.Flags().IntSliceVar(&rfiChannels, "rfi-channels", nil, "Channels receiving a persistent carrier")
	cmd.Flags().Float64Var(&rfiPower, "rfi-power", 10, "Carrier power multiplier")
	cmd.Flags().IntVar(&burstStart, "burst-start", 0, "First sample of the broadband burst")
	cmd.Flags().IntVar(&burstLen, "burst-len", 0, "Burst length in samples (0 = no burst)")
	cmd.Flags().Float64Var(&burstPower, "burst-power", 20, "Power added per channel during the burst")

	return cmd
}
