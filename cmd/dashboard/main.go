package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alejandrodnm/agentboard/config"
	"github.com/alejandrodnm/agentboard/internal/adapters/notify"
	"github.com/alejandrodnm/agentboard/internal/adapters/storage"
	"github.com/alejandrodnm/agentboard/internal/adapters/web"
	"github.com/alejandrodnm/agentboard/internal/dashboard"
	"github.com/alejandrodnm/agentboard/internal/ports"
	"github.com/alejandrodnm/agentboard/internal/readmodel"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	once := flag.Bool("once", false, "render one refresh cycle and exit")
	table := flag.Bool("table", false, "print full tables (default: compact 1-line)")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	agent := flag.String("agent", "", "filter trade views by agent name (default: all)")
	from := flag.String("from", "", "filter trades from date (YYYY-MM-DD)")
	to := flag.String("to", "", "filter trades to date (YYYY-MM-DD)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	if *addr != "" {
		cfg.HTTP.Addr = *addr
	}
	setupLogger(cfg.Log)

	filter, err := parseFilter(*agent, *from, *to)
	if err != nil {
		slog.Error("invalid filter flags", "err", err)
		os.Exit(1)
	}

	slog.Info("agentboard starting",
		"config", *configPath,
		"db", cfg.Storage.DSN,
		"interval", cfg.RefreshInterval(),
		"http", cfg.HTTP.Addr,
		"once", *once,
	)

	reader, err := storage.NewReader(cfg.Storage.DSN)
	if err != nil {
		slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
		os.Exit(1)
	}
	defer reader.Close()

	svcCfg := readmodel.DefaultConfig()
	svcCfg.TradeLimit = cfg.Dashboard.TradeLimit
	svcCfg.SentimentLimit = cfg.Dashboard.SentimentLimit
	svcCfg.TradesTTL = cfg.TradesTTL()
	svcCfg.PerformanceTTL = cfg.PerformanceTTL()
	svcCfg.SentimentTTL = cfg.SentimentTTL()
	svc := readmodel.New(svcCfg, reader)

	console := notify.NewConsole(*table || *once, filter)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	notifiers := []ports.Notifier{console}

	if cfg.HTTP.Addr != "" && !*once {
		hub := web.NewHub()
		defer hub.Close()
		notifiers = append(notifiers, hub)

		server := web.NewServer(svc, hub)
		go func() {
			if err := server.Run(ctx, cfg.HTTP.Addr); err != nil {
				slog.Error("web server exited with error", "err", err)
				cancel()
			}
		}()
	}

	poller := dashboard.New(svc, cfg.RefreshInterval(), notifiers...)

	if *once {
		if err := poller.RunOnce(ctx); err != nil {
			slog.Error("refresh failed", "err", err)
			os.Exit(1)
		}
		return
	}

	if err := poller.Run(ctx); err != nil {
		slog.Error("poller exited with error", "err", err)
		os.Exit(1)
	}

	slog.Info("agentboard stopped cleanly")
}

// parseFilter arma el filtro de presentación desde los flags.
func parseFilter(agent, from, to string) (readmodel.TradeFilter, error) {
	f := readmodel.TradeFilter{Agent: agent}
	var err error
	if from != "" {
		if f.From, err = time.Parse("2006-01-02", from); err != nil {
			return f, err
		}
	}
	if to != "" {
		if f.To, err = time.Parse("2006-01-02", to); err != nil {
			return f, err
		}
		// Rango inclusivo hasta el final del día
		f.To = f.To.Add(24*time.Hour - time.Nanosecond)
	}
	return f, nil
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
