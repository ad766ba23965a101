package main

import (
	"log"

	"github.com/romangod6/queuer-site/config"
	"github.com/spf13/cobra"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:           "site",
		Short:         "Build, serve and verify the QueueR landing page",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./config.yaml or ./config/config.yaml)")

	root.AddCommand(newBuildCmd(), newServeCmd(), newVerifyCmd())

	if err := root.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig() (*config.Config, error) {
	return config.LoadConfigFrom(configPath)
}
