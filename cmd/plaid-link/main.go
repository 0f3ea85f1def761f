package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tf-anguskong/homelab-monitor/internal/api"
	"github.com/tf-anguskong/homelab-monitor/internal/linkflow"
	"github.com/tf-anguskong/homelab-monitor/internal/metrics"
	"github.com/tf-anguskong/homelab-monitor/internal/plaid"
	"github.com/tf-anguskong/homelab-monitor/internal/rate"
	internalsecrets "github.com/tf-anguskong/homelab-monitor/internal/secrets"
	"github.com/tf-anguskong/homelab-monitor/pkg/config"
	"github.com/tf-anguskong/homelab-monitor/pkg/logger"
	"github.com/tf-anguskong/homelab-monitor/pkg/secrets"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Load configuration ---
	cfg := config.Load()

	logger.Init("plaid-link", cfg.Env, cfg.LogLevel)
	defer logger.Sync()
	logg := logger.S()

	// --- Optional AWS Secrets Manager credential source ---
	if (cfg.PlaidClientID == "" || cfg.PlaidSecret == "") && cfg.PlaidSecretName != "" {
		creds, err := resolvePlaidCredentials(ctx, cfg)
		if err != nil {
			logg.Fatalw("failed to resolve Plaid credentials from AWS Secrets Manager",
				"secret", cfg.PlaidSecretName,
				"error", err)
		}
		cfg.PlaidClientID = creds.ClientID
		cfg.PlaidSecret = creds.Secret
	}

	// Checked before any network call; the message names the missing variable.
	if err := cfg.ValidatePlaid(); err != nil {
		logg.Fatalw("missing required configuration", "error", err)
	}

	// --- Plaid client ---
	rateMgr := rate.NewManager(rate.Config{
		RequestsPerSecond: 10,
		Burst:             20,
	})
	plaidClient := plaid.NewClient(logger.L(), rateMgr, cfg.PlaidEnv, plaid.Credentials{
		ClientID: cfg.PlaidClientID,
		Secret:   cfg.PlaidSecret,
	})
	plaidClient.SetObserver(metrics.ObservePlaidRequest)

	// --- Link-flow service (tokens print to stdout) ---
	svc := linkflow.NewService(logger.L(), plaidClient, os.Stdout)

	// --- Fiber HTTP server ---
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
		BodyLimit:    cfg.HTTPBodyLimit,
	})
	api.RegisterRoutes(app, api.NewLinkHandler(logger.L(), svc))

	fmt.Printf("Plaid Link setup server starting at http://localhost:%d\n", cfg.LinkPort)
	fmt.Println("Open that URL in your browser to link accounts.")
	fmt.Println("Press Ctrl+C when done.")
	fmt.Println()

	go func() {
		if err := app.Listen(fmt.Sprintf(":%d", cfg.LinkPort)); err != nil {
			logg.Fatalw("fiber.listen_failed", "error", err)
		}
	}()

	logg.Infow("[plaid-link] running",
		"plaid_env", cfg.PlaidEnv,
		"port", cfg.LinkPort)

	<-ctx.Done()
	logg.Info("shutting down [plaid-link]...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logg.Warnw("fiber.shutdown_failed", "error", err)
	}
}

// resolvePlaidCredentials fetches the client_id/secret pair from the secret
// named by PLAID_SECRET_NAME.
func resolvePlaidCredentials(ctx context.Context, cfg *config.Config) (plaid.Credentials, error) {
	provider, err := secrets.NewAWSProvider(cfg.AWSRegion)
	if err != nil {
		return plaid.Credentials{}, err
	}

	cache := secrets.NewCache[plaid.Credentials](cfg.CacheTTL)
	resolver := internalsecrets.NewResolver(logger.L(), provider, cache)

	return resolver.Resolve(ctx, cfg.PlaidSecretName, func(m map[string]string) (plaid.Credentials, error) {
		creds := plaid.Credentials{ClientID: m["client_id"], Secret: m["secret"]}
		if creds.ClientID == "" {
			return plaid.Credentials{}, fmt.Errorf("missing required field 'client_id'")
		}
		if creds.Secret == "" {
			return plaid.Credentials{}, fmt.Errorf("missing required field 'secret'")
		}
		return creds, nil
	})
}
