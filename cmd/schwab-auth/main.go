package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pkg/browser"

	"github.com/tf-anguskong/homelab-monitor/internal/schwab"
	internalsecrets "github.com/tf-anguskong/homelab-monitor/internal/secrets"
	"github.com/tf-anguskong/homelab-monitor/pkg/config"
	"github.com/tf-anguskong/homelab-monitor/pkg/logger"
	"github.com/tf-anguskong/homelab-monitor/pkg/secrets"
)

// schwabCredentials is the pair resolved from AWS Secrets Manager when the
// client secret is not kept in .env.
type schwabCredentials struct {
	ClientID     string
	ClientSecret string
}

func main() {
	force := flag.Bool("force", false, "run the OAuth flow even if a valid token file already exists")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Load configuration ---
	cfg := config.Load()

	logger.Init("schwab-auth", cfg.Env, cfg.LogLevel)
	defer logger.Sync()
	logg := logger.S()

	// --- Optional AWS Secrets Manager credential source ---
	if (cfg.SchwabClientID == "" || cfg.SchwabClientSecret == "") && cfg.SchwabSecretName != "" {
		creds, err := resolveSchwabCredentials(ctx, cfg)
		if err != nil {
			logg.Fatalw("failed to resolve Schwab credentials from AWS Secrets Manager",
				"secret", cfg.SchwabSecretName,
				"error", err)
		}
		cfg.SchwabClientID = creds.ClientID
		cfg.SchwabClientSecret = creds.ClientSecret
	}

	// Checked before any network call; the message names the missing variable.
	if err := cfg.ValidateSchwab(); err != nil {
		logg.Fatalw("missing required configuration", "error", err)
	}

	if err := schwab.EnsureParentDir(cfg.SchwabTokenFile); err != nil {
		logg.Fatalw("failed to create token directory",
			"path", cfg.SchwabTokenFile,
			"error", err)
	}

	// Skip the interactive flow when a usable bundle is already on disk.
	if !*force {
		if tok, err := schwab.LoadToken(cfg.SchwabTokenFile); err == nil && tok.Valid() {
			fmt.Printf("Already authorized: token at %s is valid until %s.\n",
				cfg.SchwabTokenFile, tok.ExpiresAt.Format("2006-01-02 15:04:05 MST"))
			fmt.Println("Run with --force to go through the flow again.")
			return
		}
	}

	flow := schwab.NewFlow(logger.L(), cfg.SchwabClientID, cfg.SchwabClientSecret, cfg.SchwabRedirectURI)

	fmt.Println("Starting Schwab OAuth2 flow...")
	fmt.Println("A browser window will open. Log in to Schwab and authorise the app.")
	fmt.Println("After authorising, you will be redirected to a localhost URL.")
	fmt.Println("Copy the full redirect URL and paste it here when prompted.")
	fmt.Println()

	authURL := flow.AuthCodeURL()
	if err := browser.OpenURL(authURL); err != nil {
		fmt.Println("Could not open a browser. Visit the following URL to authorise the app:")
		fmt.Println(authURL)
	}

	fmt.Print("Paste the full redirect URL here: ")
	raw, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && strings.TrimSpace(raw) == "" {
		logg.Fatalw("failed to read redirect URL", "error", err)
	}

	code, err := flow.ParseRedirect(raw)
	if err != nil {
		logg.Fatalw("OAuth flow failed", "error", err)
	}

	tok, err := flow.Exchange(ctx, code)
	if err != nil {
		logg.Fatalw("OAuth flow failed", "error", err)
	}

	if err := schwab.SaveToken(cfg.SchwabTokenFile, tok); err != nil {
		logg.Fatalw("failed to save token file", "error", err)
	}

	fmt.Printf("\nSuccess! Token saved to: %s\n", cfg.SchwabTokenFile)
	fmt.Println("The collector will pick it up and refresh it automatically on each run.")
}

// resolveSchwabCredentials fetches the client_id/client_secret pair from the
// secret named by SCHWAB_SECRET_NAME.
func resolveSchwabCredentials(ctx context.Context, cfg *config.Config) (schwabCredentials, error) {
	provider, err := secrets.NewAWSProvider(cfg.AWSRegion)
	if err != nil {
		return schwabCredentials{}, err
	}

	cache := secrets.NewCache[schwabCredentials](cfg.CacheTTL)
	resolver := internalsecrets.NewResolver(logger.L(), provider, cache)

	return resolver.Resolve(ctx, cfg.SchwabSecretName, func(m map[string]string) (schwabCredentials, error) {
		creds := schwabCredentials{ClientID: m["client_id"], ClientSecret: m["client_secret"]}
		if creds.ClientID == "" {
			return schwabCredentials{}, fmt.Errorf("missing required field 'client_id'")
		}
		if creds.ClientSecret == "" {
			return schwabCredentials{}, fmt.Errorf("missing required field 'client_secret'")
		}
		return creds, nil
	})
}
