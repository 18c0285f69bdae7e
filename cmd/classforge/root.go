package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "classforge",
	Short: "Compile class diagrams into Spring Boot projects",
	Long: `classforge turns a class diagram document (classes, attributes and typed
relations) into a complete Spring Boot project: JPA entities, DTOs,
repositories, services, controllers, build files and a Postman collection.

It generates straight to disk, archives to zip, or runs as an HTTP service
with stored diagrams, share links and relation suggestions.`,
	Version:      version,
	SilenceUsage: true,
}

func init() {
	rootCmd.SetVersionTemplate("classforge version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default config.yaml, then ~/.classforge/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "verbose logging")
}

func newLogger() (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if debug {
		z := zap.NewDevelopmentConfig()
		z.OutputPaths = []string{"stdout"}
		logger, err = z.Build()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}
