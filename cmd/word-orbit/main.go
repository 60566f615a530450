package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	serverURL  string
	modelName  string
)

func main() {
	root := &cobra.Command{
		Use:   "word-orbit",
		Short: "Interactive 3D word embedding explorer for the terminal",
		Long: `word-orbit renders word embedding neighborhoods as a navigable
3D point cloud. Coordinates are streamed in batches from a layout
server; the anchor word sits at the center with its nearest neighbors
placed around it.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "word-orbit.yaml", "config file path")
	root.PersistentFlags().StringVar(&serverURL, "server", "", "layout server URL (overrides config)")
	root.PersistentFlags().StringVar(&modelName, "model", "", "embedding model name (overrides config)")

	root.AddCommand(newRunCmd())
	root.AddCommand(newProbeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
