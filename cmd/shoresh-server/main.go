// ABOUTME: Entry point for the shoresh vocabulary-tracker server
// ABOUTME: Serves the HTTP API over the SQLite store with graceful shutdown

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/shoresh-dev/shoresh/internal/api"
	"github.com/shoresh-dev/shoresh/internal/auth"
	"github.com/shoresh-dev/shoresh/internal/config"
	"github.com/shoresh-dev/shoresh/internal/store"
)

// Version is set by goreleaser at build time.
var version = "dev"

const banner = `
      _                        _
  ___| |__   ___  _ __ ___ ___| |__
 / __| '_ \ / _ \| '__/ _ \ __| '_ \
 \__ \ | | | (_) | | |  __\__ \ | | |
 |___/_| |_|\___/|_|  \___|___/_| |_|
`

// getConfigPath returns the path to the server config file.
// Priority: SHORESH_CONFIG env var > XDG_CONFIG_HOME/shoresh/server.yaml > ~/.config/shoresh/server.yaml
func getConfigPath() string {
	if envPath := os.Getenv("SHORESH_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "server.yaml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "shoresh", "server.yaml")
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: shoresh-server <command>")
		fmt.Println()
		fmt.Println("Commands:")
		fmt.Println("  serve           Start the API server")
		fmt.Println("  init            Create a starter config file")
		fmt.Println("  health          Check server health")
		fmt.Println("  hash-password   Generate the write-password hash")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(ctx)
	case "init":
		err = runInit()
	case "health":
		err = runHealth(ctx)
	case "hash-password":
		err = runHashPassword()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(ctx context.Context) error {
	configPath := getConfigPath()

	cyan := color.New(color.FgCyan)
	cyan.Print(banner)
	gray := color.New(color.FgHiBlack)
	gray.Printf("    version: %s\n\n", version)

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := setupLogger(cfg.Logging)
	// Components derive their loggers from slog.Default; the configured
	// handler has to be installed before any of them is constructed.
	slog.SetDefault(logger)

	green := color.New(color.FgGreen)
	green.Print("    ▶ ")
	fmt.Printf("Config:   %s\n", configPath)
	green.Print("    ▶ ")
	fmt.Printf("HTTP:     %s\n", cfg.Server.HTTPAddr)
	green.Print("    ▶ ")
	fmt.Printf("Database: %s\n", cfg.Database.Path)
	fmt.Println()

	logger.Info("starting shoresh-server",
		"config", configPath,
		"http_addr", cfg.Server.HTTPAddr,
		"database", cfg.Database.Path,
	)

	gw, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer gw.Close()

	verifier := auth.NewVerifier(cfg.Auth.PasswordHashFile)
	apiServer := api.New(gw, verifier, api.Options{
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsPath:    cfg.Metrics.Path,
	})

	httpServer := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: apiServer.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	timeout := cfg.Server.ShutdownTimeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}

	return nil
}

const configTemplate = `server:
  http_addr: ":3000"
  shutdown_timeout: "5s"

database:
  path: %q

auth:
  password_hash_file: %q

logging:
  level: "info"
  format: "text"

metrics:
  enabled: true
  path: "/metrics"
`

func runInit() error {
	configPath := getConfigPath()

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config already exists at %s", configPath)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	dataDir := filepath.Dir(configPath)
	content := fmt.Sprintf(configTemplate,
		filepath.Join(dataDir, "shoresh.db"),
		filepath.Join(dataDir, "password.hash"),
	)

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("Wrote %s\n", configPath)
	fmt.Println("Next: shoresh-server hash-password > " + filepath.Join(dataDir, "password.hash"))
	return nil
}

func runHealth(ctx context.Context) error {
	cfg, err := config.Load(getConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	host, port, err := net.SplitHostPort(cfg.Server.HTTPAddr)
	if err != nil {
		return fmt.Errorf("parsing http_addr %q: %w", cfg.Server.HTTPAddr, err)
	}
	if host == "" || host == "0.0.0.0" {
		host = "localhost"
	}

	url := fmt.Sprintf("http://%s/health", net.JoinHostPort(host, port))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unhealthy: status %d", resp.StatusCode)
	}

	fmt.Println("healthy")
	return nil
}

// runHashPassword reads the shared password from stdin and prints its bcrypt
// hash, ready to redirect into the hash file.
func runHashPassword() error {
	fmt.Fprint(os.Stderr, "Password: ")

	reader := bufio.NewReader(os.Stdin)
	password, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}
	password = strings.TrimSpace(password)
	if password == "" {
		return fmt.Errorf("password must not be empty")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	fmt.Println(hash)
	return nil
}
