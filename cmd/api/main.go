package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/strutynskyi/movie-catalog/internal/app"
	"github.com/strutynskyi/movie-catalog/internal/config"
	"github.com/strutynskyi/movie-catalog/internal/vcs"
)

var (
	version = vcs.Version()
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:           "movie-catalog",
	Short:         "REST service for browsing and managing a movie catalog",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}

		return app.Run(cfg)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version and exit",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Version:\t%s\n", version)
	},
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (yaml, json or toml)")

	config.RegisterFlags(serveCmd.Flags())

	rootCmd.AddCommand(serveCmd, migrateCmd(), versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
