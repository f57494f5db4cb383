package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "blacksplit <input>",
		Short:        "Detect black-frame periods in a video and split it at them",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0])
		},
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	root.Flags().Float64P("black-min-duration", "d", 2.0,
		"Minimum detected black duration in seconds (non-negative)")
	root.Flags().Float64P("picture-black-ratio-th", "r", 0.98,
		"Threshold for considering a picture 'black'")
	root.Flags().Float64P("pixel-black-th", "t", 0.10,
		"Threshold for considering a pixel 'black'")
	root.Flags().StringP("output-directory", "o", "",
		"Output directory (default: current working directory)")
	root.Flags().StringP("output-extension", "e", "mkv",
		"Output extension; choose 'mov' for QuickTime-compatible files")
	root.Flags().IntP("cuts", "c", 0,
		"Limit splitting to this many evenly distributed cut points (0 = cut at every black period)")
	root.Flags().Bool("no-split", false,
		"Don't split the video into segments")
	root.Flags().Bool("no-copy", false,
		"Don't stream-copy, but re-encode the video")
	root.Flags().BoolP("progress", "p", false,
		"Show a progress bar on stderr")
	root.Flags().BoolP("verbose", "v", false,
		"Print verbose info to stderr, and JSON of black and content periods to stdout")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
