// DraftCoach - Discord bot giving Mobile Legends draft advice.
// Optimized for minimal resource usage.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/draftcoach/internal/bot"
	"github.com/draftcoach/internal/config"
	"github.com/draftcoach/internal/data"
	"github.com/draftcoach/internal/hero"
	"github.com/draftcoach/internal/logging"
	"github.com/draftcoach/internal/roster"
	"github.com/draftcoach/internal/services/fetch"
	"github.com/draftcoach/internal/services/mlbb"
	"github.com/draftcoach/internal/services/wiki"
	"github.com/draftcoach/pkg/healthcheck"
)

func init() {
	// Optimize garbage collector for low memory
	debug.SetGCPercent(50)

	// Limit max memory usage (soft limit)
	debug.SetMemoryLimit(64 * 1024 * 1024) // 64MB

	// Relations and rates are fetched concurrently, two threads are enough
	runtime.GOMAXPROCS(2)
}

func main() {
	// Health check flag for Docker
	healthFlag := flag.Bool("health", false, "Run health check")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if *healthFlag {
		if err := runHealthCheck(cfg.HealthAddr); err != nil {
			os.Exit(1)
		}
		os.Exit(0)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting DraftCoach...")

	if err := cfg.Validate(); err != nil {
		logger.Fatal("Config invalid", zap.Error(err))
	}

	if _, err := data.LoadHeroTables(cfg.HeroTablesFile); err != nil {
		logger.Fatal("Hero tables", zap.String("file", cfg.HeroTablesFile), zap.Error(err))
	}
	catalog := hero.Default()

	var strategies []fetch.Strategy
	if !cfg.DisableProxies {
		strategies, err = fetch.LoadStrategies(cfg.ProxiesFile)
		if err != nil {
			logger.Fatal("Proxy strategies", zap.Error(err))
		}
	}
	resolver := fetch.New(strategies,
		fetch.WithHTTPClient(fetch.NewHTTPClient(cfg.HTTPTimeout)),
		fetch.WithLogger(logger.Named("fetch")),
	)
	logger.Info("Retrieval chain ready", zap.Int("relays", len(strategies)))

	stats := mlbb.NewClient(cfg, resolver, catalog, logger.Named("mlbb"))
	wikiClient := wiki.NewClient(cfg, resolver, catalog, logger.Named("wiki"))
	store := roster.NewStore(roster.NewLoader(stats, wikiClient, catalog, logger.Named("roster")))

	// Create bot
	discordBot, err := bot.New(cfg, bot.Deps{
		Meta:    stats,
		Roster:  store,
		Catalog: catalog,
	}, logger.Named("bot"))
	if err != nil {
		logger.Fatal("Bot error", zap.Error(err))
	}

	// Start health check server (lightweight)
	healthServer := healthcheck.New(cfg.HealthAddr, store.Status)
	go func() {
		if err := healthServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Health server error", zap.Error(err))
		}
	}()

	// Start bot
	if err := discordBot.Start(); err != nil {
		logger.Fatal("Start error", zap.Error(err))
	}

	logger.Info("DraftCoach running")

	// Wait for interrupt signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down...")

	// Graceful shutdown with short timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := healthServer.Stop(ctx); err != nil {
		logger.Warn("Health server shutdown", zap.Error(err))
	}
	if err := discordBot.Stop(); err != nil {
		logger.Warn("Discord shutdown", zap.Error(err))
	}

	logger.Info("Stopped")
}

// runHealthCheck performs a quick health check
func runHealthCheck(addr string) error {
	client := &http.Client{Timeout: 3 * time.Second}
	resp, err := client.Get(healthURL(addr))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unhealthy: %d", resp.StatusCode)
	}
	return nil
}

// healthURL turns a listen address into a local probe URL.
func healthURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://localhost:8080/health"
	}
	if host == "" || host == "0.0.0.0" || strings.Contains(host, ":") {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port) + "/health"
}
