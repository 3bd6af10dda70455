// main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/malwaredetective/blood-sugar-console/display"
	"github.com/malwaredetective/blood-sugar-console/libreview"
	"github.com/malwaredetective/blood-sugar-console/logging"
)

type Config struct {
	Email    string
	Password string
	BaseURL  string
}

func main() {
	ctx := context.Background()
	if err := run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet(args[0], flag.ExitOnError)
	watch := flags.Bool("watch", false, "keep running and refresh the reading on an interval")
	interval := flags.Duration("interval", 5*time.Minute, "refresh interval in watch mode")
	if err := flags.Parse(args[1:]); err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}

	// A missing .env file is fine; platform environment variables apply.
	_ = godotenv.Load()

	logger := slog.New(logging.NewTerminalHandler(os.Stderr, logging.LevelFromEnv()))

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	clientConfig := libreview.DefaultConfig()
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	client := libreview.New(clientConfig)

	logger.Info("authenticating", "base_url", clientConfig.BaseURL)
	session, err := client.Authenticate(ctx, cfg.Email, cfg.Password)
	if err != nil {
		return err
	}
	logger.Debug("session established", "patient_id", session.PatientID)

	renderer := display.New(os.Stdout)

	fetchAndRender := func(ctx context.Context) error {
		reading, err := client.LatestReading(ctx, session)
		if err != nil {
			return err
		}
		renderer.Render(reading)
		return nil
	}

	if !*watch {
		return fetchAndRender(ctx)
	}

	logger.Info("watch mode enabled", "interval", *interval)

	// A failed refresh in watch mode is reported and the loop keeps going;
	// the next tick simply tries again.
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := fetchAndRender(ctx); err != nil {
			logger.Error("refresh failed", "err", err)
		}
		ticker := time.NewTicker(*interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if err := fetchAndRender(ctx); err != nil {
					logger.Error("refresh failed", "err", err)
				}
			}
		}
	})
	return g.Wait()
}

func loadConfig() (Config, error) {
	email := os.Getenv("LIBRE_FREESYTLE_EMAIL")
	if email == "" {
		return Config{}, fmt.Errorf("LIBRE_FREESYTLE_EMAIL environment variable is not set")
	}
	password := os.Getenv("LIBRE_FREESYTLE_PASSWORD")
	if password == "" {
		return Config{}, fmt.Errorf("LIBRE_FREESYTLE_PASSWORD environment variable is not set")
	}

	return Config{
		Email:    email,
		Password: password,
		BaseURL:  getEnvOrDefault("LIBRE_API_URL", ""),
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
