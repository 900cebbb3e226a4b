package main

import (
	"fmt"
	"os"

	"github.com/aretw0/parlor/internal/cli"
	"github.com/spf13/cobra"
)

// playCmd represents the play command
var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the hall story",
	Long:  `Starts the engine in interactive mode. Type the number of a choice to take it.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		seed, _ := cmd.Flags().GetUint64("seed")
		headless, _ := cmd.Flags().GetBool("headless")
		debug, _ := cmd.Flags().GetBool("debug")
		metricsFile, _ := cmd.Flags().GetString("metrics-file")
		width, _ := cmd.Flags().GetInt("width")

		err := cli.RunSession(cmd.Context(), cli.RunOptions{
			ConfigPath:  configPath,
			Seed:        seed,
			Headless:    headless,
			Debug:       debug,
			MetricsFile: metricsFile,
			Width:       width,
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().Uint64("seed", 0, "Seed the random source (0 uses the config or a random seed)")
	playCmd.Flags().Bool("headless", false, "Plain output: no colors, no banner, no pacing")
	playCmd.Flags().Bool("debug", false, "Log turns and rule activity to stderr")
	playCmd.Flags().String("metrics-file", "", "Write Prometheus metrics to this file on exit")
	playCmd.Flags().Int("width", 0, "Layout width in cells (0 detects the terminal)")

	// Make 'play' the default if no command is provided
	rootCmd.Flags().AddFlagSet(playCmd.Flags())
	rootCmd.Run = playCmd.Run
}
