package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oncallops/sla-exporter/config"
	"github.com/oncallops/sla-exporter/internal/database"
	"github.com/oncallops/sla-exporter/internal/http"
	"github.com/oncallops/sla-exporter/internal/http/handlers"
	"github.com/oncallops/sla-exporter/internal/traces"
	"github.com/oncallops/sla-exporter/pkg/indicator"
	"github.com/oncallops/sla-exporter/pkg/scraper"
	"github.com/oncallops/sla-exporter/pkg/sla"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func buildServerCmd(logLevel *string, logFormat *string) *cobra.Command {
	serverCmd := &cobra.Command{
		Use:   "server",
		Short: "Runs the SLA aggregation server",
		Run: func(cmd *cobra.Command, args []string) {
			logger := buildLogger(*logLevel, *logFormat)
			err := runServer(logger)
			if err != nil {
				logger.Error(err.Error())
				os.Exit(2)
			}

		},
	}
	return serverCmd
}

func loadConfig() (*config.Configuration, error) {
	file, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("fail to read configuration file: %w", err)
	}
	var configuration config.Configuration
	if err := yaml.Unmarshal(file, &configuration); err != nil {
		return nil, fmt.Errorf("fail to parse yaml configuration file: %w", err)
	}
	if configuration.HTTP.Host == "" {
		configuration.HTTP.Host = "0.0.0.0"
	}
	return &configuration, nil
}

func runServer(logger *slog.Logger) error {
	configuration, err := loadConfig()
	if err != nil {
		return err
	}
	if configuration.HTTP.Port == 0 {
		configuration.HTTP.Port = 9091
	}
	tracerProvider, err := traces.Init(logger, configuration.Tracing, "sla-exporter")
	if err != nil {
		return err
	}
	registry := prometheus.NewRegistry()
	store, err := database.New(logger, configuration.Database)
	if err != nil {
		return err
	}
	indicatorService, err := indicator.New(logger, store, registry, configuration.Indicators)
	if err != nil {
		return err
	}
	proberScraper, err := scraper.New(logger, configuration.SLA.Scraper)
	if err != nil {
		return err
	}
	slaService, err := sla.New(logger, proberScraper, indicatorService, registry, configuration.SLA)
	if err != nil {
		return err
	}
	handlersBuilder := handlers.NewBuilder(slaService, indicatorService)
	server, err := http.NewServer(logger, configuration.HTTP, registry, handlersBuilder)
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
	indicatorService.Start()
	slaService.Start()
	go func() {
		for sig := range signals {
			switch sig {
			case syscall.SIGINT, syscall.SIGTERM:
				logger.Info(fmt.Sprintf("received signal %s, starting shutdown", sig))
				signal.Stop(signals)
				slaService.Stop()
				indicatorService.Stop()
				err := server.Stop()
				if tracerProvider != nil {
					ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
					shutdownErr := tracerProvider.Shutdown(ctx)
					cancel()
					if shutdownErr != nil {
						logger.Error(shutdownErr.Error())
					}
				}
				errChan <- err
			}

		}
	}()
	exitErr := <-errChan
	return exitErr
}
