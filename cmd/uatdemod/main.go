package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zaitcev/dump978/internal/app"
)

func main() {
	var config app.Config

	rootCmd := &cobra.Command{
		Use:   "uatdemod",
		Short: "UAT 978 MHz software demodulator",
		Long: `uatdemod demodulates a raw 8-bit I/Q sample stream of the UAT 978 MHz
air-to-ground datalink read from standard input, recovers downlink and
uplink frames, Reed-Solomon corrects them, and writes each recovered frame
as a hexadecimal text record to standard output.

Example usage:
  rtl_sdr -f 978000000 -s 2083334 -g 0 - | uatdemod`,
		RunE: func(cmd *cobra.Command, args []string) error {
			application := app.NewApplication(config)
			return application.Start()
		},
	}

	rootCmd.Flags().BoolVarP(&config.Verbose, "verbose", "v", false, "Verbose logging")
	rootCmd.Flags().BoolVar(&config.ShowVersion, "version", false, "Show version information")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
