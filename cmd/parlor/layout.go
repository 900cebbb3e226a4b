package main

import (
	"fmt"
	"os"

	"github.com/aretw0/parlor/internal/cli"
	"github.com/aretw0/parlor/internal/config"
	"github.com/spf13/cobra"
)

var layoutCmd = &cobra.Command{
	Use:     "layout [labels...]",
	Short:   "Preview how choice labels flow at a given width",
	Example: `  parlor layout --width 30 "Look around" "Ask about the owl" Wait`,
	Args:    cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		topic, _ := cmd.Flags().GetString("topic")
		width, _ := cmd.Flags().GetInt("width")

		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		if !cmd.Flags().Changed("width") && cfg.Layout.Width != 0 {
			width = cfg.Layout.Width
		}

		err = cli.PrintLayout(os.Stdout, cli.LayoutOptions{
			Topic:    topic,
			Labels:   args,
			Width:    width,
			HSpacing: cfg.Layout.HSpacing,
			VSpacing: cfg.Layout.VSpacing,
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(layoutCmd)

	layoutCmd.Flags().String("topic", "World", "Topic heading of the panel")
	layoutCmd.Flags().Int("width", 40, "Layout width in cells")
}
