package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/travelfare/travel-api-client/internal/app"
	"github.com/travelfare/travel-api-client/internal/config"
	"github.com/travelfare/travel-api-client/internal/logger"
)

type rootOptions struct {
	configFile string
	output     string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "apiclient",
		Short:         "Query the travel service countries, cities and cheap prices endpoints",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "optional YAML config file")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", app.FormatJSON, "output format: json, raw or yaml")

	for _, resource := range app.Resources {
		root.AddCommand(newResourceCmd(opts, resource))
	}
	root.AddCommand(newAllCmd(opts))

	return root
}

func newResourceCmd(opts *rootOptions, resource string) *cobra.Command {
	return &cobra.Command{
		Use:   resource,
		Short: fmt.Sprintf("Fetch %s", resource),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, func(f *app.Fetcher) (json.RawMessage, error) {
				return f.Fetch(cmd.Context(), resource)
			})
		},
	}
}

func newAllCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Fetch every resource concurrently into one JSON object",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, func(f *app.Fetcher) (json.RawMessage, error) {
				payloads, err := f.FetchAll(cmd.Context())
				if err != nil {
					return nil, err
				}
				return app.Bundle(payloads)
			})
		},
	}
}

func run(cmd *cobra.Command, opts *rootOptions, fetch func(*app.Fetcher) (json.RawMessage, error)) error {
	cfg, err := config.LoadFile(opts.configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Close()

	log.InfoObj("apiclient starting", "command", map[string]any{
		"app":     cfg.AppName,
		"env":     cfg.Env,
		"command": cmd.Name(),
		"output":  opts.output,
	})

	fetcher, err := app.NewFetcher(cfg, log)
	if err != nil {
		log.ErrorObj("failed to initialize fetcher", "error", err)
		return err
	}

	payload, err := fetch(fetcher)
	if err != nil {
		return fmt.Errorf("%s: %w", cmd.Name(), err)
	}

	return app.Render(cmd.OutOrStdout(), payload, opts.output)
}
