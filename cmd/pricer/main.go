package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alejandrodnm/optionlab/config"
	"github.com/alejandrodnm/optionlab/internal/adapters/export"
	"github.com/alejandrodnm/optionlab/internal/adapters/notify"
	"github.com/alejandrodnm/optionlab/internal/adapters/storage"
	"github.com/alejandrodnm/optionlab/internal/application/pricer"
	"github.com/alejandrodnm/optionlab/internal/application/sweep"
	"github.com/google/uuid"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	heatmap := flag.Bool("heatmap", false, "sweep spot × volatility and print call/put heatmaps")
	runs := flag.Bool("runs", false, "print previous runs and exit")
	exportPath := flag.String("export", "", "write previous runs as CSV to this path and exit")
	gridCSV := flag.String("grid-csv", "", "with -heatmap: also write the grid as CSV to this path")
	noStore := flag.Bool("no-store", false, "do not persist the PnL run")

	// inputs del contrato: solo sobreescriben config si se pasan explícitamente
	spot := flag.Float64("spot", 0, "current price of the underlying")
	strike := flag.Float64("strike", 0, "strike price")
	vol := flag.Float64("vol", 0, "annualized volatility")
	rate := flag.Float64("rate", 0, "risk-free interest rate")
	maturity := flag.Float64("maturity", 0, "time to maturity in years")
	callPaid := flag.Float64("call-paid", 0, "call purchase price")
	putPaid := flag.Float64("put-paid", 0, "put purchase price")
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
	setupLogger(cfg.Log)

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "spot":
			cfg.Contract.Spot = *spot
		case "strike":
			cfg.Contract.Strike = *strike
		case "vol":
			cfg.Contract.Volatility = *vol
		case "rate":
			cfg.Contract.Rate = rate
		case "maturity":
			cfg.Contract.Maturity = *maturity
		case "call-paid":
			cfg.Contract.CallPurchasePrice = *callPaid
		case "put-paid":
			cfg.Contract.PutPurchasePrice = *putPaid
		}
	})

	slog.Info("optionlab starting",
		"config", *configPath,
		"heatmap", *heatmap,
		"runs", *runs,
		"export", *exportPath,
		"no_store", *noStore,
	)

	needStore := !*noStore || *runs || *exportPath != ""
	var store *storage.SQLiteStorage
	if needStore {
		store, err = storage.NewSQLiteStorage(cfg.Storage.DSN)
		if err != nil {
			slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
			os.Exit(1)
		}
	}

	code := run(cfg, store, *heatmap, *runs, *exportPath, *gridCSV)
	if store != nil {
		if err := store.Close(); err != nil {
			slog.Warn("failed to close storage", "err", err)
		}
	}
	os.Exit(code)
}

// run ejecuta el modo pedido y devuelve el exit code. Separado de main para que
// los defer se ejecuten antes de os.Exit.
func run(cfg *config.Config, store *storage.SQLiteStorage, heatmap, runs bool, exportPath, gridCSV string) int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	renderer := notify.NewConsole(*cfg.Display.Decimals, *cfg.Display.Color)
	engine := sweep.New(sweep.Config{Workers: cfg.Sweep.Workers})

	// interfaz nil, no puntero nil con tipo: el Service comprueba store == nil
	var svc *pricer.Service
	if store != nil {
		svc = pricer.NewService(engine, store, renderer, export.CSV{}, cfg.SweepParams())
	} else {
		svc = pricer.NewService(engine, nil, renderer, export.CSV{}, cfg.SweepParams())
	}

	switch {
	case exportPath != "":
		return runExport(ctx, svc, exportPath)
	case runs:
		return runHistory(ctx, svc)
	case heatmap:
		return runHeatmap(ctx, svc, cfg.OptionContract(), gridCSV)
	}
	return runPnL(ctx, svc, cfg)
}

func runPnL(ctx context.Context, svc *pricer.Service, cfg *config.Config) int {
	contract := cfg.OptionContract()

	if _, err := svc.Quote(ctx, contract); err != nil {
		slog.Error("pricing failed", "err", err)
		return 1
	}

	pnl, err := svc.CalculatePnL(ctx, contract, cfg.Contract.CallPurchasePrice, cfg.Contract.PutPurchasePrice)
	if err != nil {
		slog.Error("pnl calculation failed", "err", err)
		return 1
	}

	slog.Info("pnl calculated", "call_pnl", pnl.CallPnL, "put_pnl", pnl.PutPnL)
	return 0
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

	// logs a stderr: stdout queda para tablas y CSV
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler).With("session", uuid.NewString()))
}
