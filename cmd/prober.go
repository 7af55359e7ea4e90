package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/oncallops/sla-exporter/internal/http"
	"github.com/oncallops/sla-exporter/pkg/prober"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func buildProberCmd(logLevel *string, logFormat *string) *cobra.Command {
	proberCmd := &cobra.Command{
		Use:   "prober",
		Short: "Runs the synthetic prober against the oncall API",
		Run: func(cmd *cobra.Command, args []string) {
			logger := buildLogger(*logLevel, *logFormat)
			err := runProber(logger)
			if err != nil {
				logger.Error(err.Error())
				os.Exit(2)
			}

		},
	}
	return proberCmd
}

func runProber(logger *slog.Logger) error {
	configuration, err := loadConfig()
	if err != nil {
		return err
	}
	if configuration.HTTP.Port == 0 {
		configuration.HTTP.Port = 9081
	}
	registry := prometheus.NewRegistry()
	proberService, err := prober.New(logger, registry, configuration.Prober)
	if err != nil {
		return err
	}
	// metrics only, the prober exposes no API
	server, err := http.NewServer(logger, configuration.HTTP, registry, nil)
	if err != nil {
		return err
	}
	signals := make(chan os.Signal, 1)
	errChan := make(chan error)

	signal.Notify(
		signals,
		syscall.SIGINT,
		syscall.SIGTERM)

	server.Start()
	proberService.Start()
	go func() {
		for sig := range signals {
			switch sig {
			case syscall.SIGINT, syscall.SIGTERM:
				logger.Info(fmt.Sprintf("received signal %s, starting shutdown", sig))
				signal.Stop(signals)
				proberService.Stop()
				errChan <- server.Stop()
			}

		}
	}()
	exitErr := <-errChan
	return exitErr
}
