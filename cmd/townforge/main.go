package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/townforge/townforge/internal/server"
	"github.com/townforge/townforge/pkg/config"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "townforge",
		Short: "Procedural medieval town generator",
	}

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(renderCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func generateCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a town and write its document (and optionally a map)",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runGenerate(opts)
		},
	}
	addRunFlags(cmd, &opts)
	cmd.Flags().StringVarP(&opts.document, "out", "o", "", "document output path (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "document format: json or yaml")
	cmd.Flags().StringVar(&opts.mapPath, "png", "", "also render a PNG map to this path")
	return cmd
}

func renderCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "render [map.png]",
		Short: "Generate a town and render its map",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			opts.mapPath = args[0]
			return runRender(opts)
		},
	}
	addRunFlags(cmd, &opts)
	return cmd
}

func serveCmd() *cobra.Command {
	var port int
	var presetPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the local preview server",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			preset := config.Default()
			if presetPath != "" {
				loaded, err := config.Load(presetPath)
				if err != nil {
					return err
				}
				preset = loaded
			}
			srv := server.New(preset, port)
			return srv.Start()
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 3000, "HTTP server port")
	cmd.Flags().StringVarP(&presetPath, "config", "c", "", "preset YAML path")
	return cmd
}

func addRunFlags(cmd *cobra.Command, opts *runOptions) {
	cmd.Flags().IntVarP(&opts.size, "size", "n", 0, "number of inner patches (default from preset)")
	cmd.Flags().Int64VarP(&opts.seed, "seed", "s", 0, "generation seed (0 draws from the clock)")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "map pixels per unit")
	cmd.Flags().StringVarP(&opts.presetPath, "config", "c", "", "preset YAML path")
}
