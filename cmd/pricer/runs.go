package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/alejandrodnm/optionlab/internal/application/pricer"
)

func runHistory(ctx context.Context, svc *pricer.Service) int {
	runs, err := svc.History(ctx)
	if err != nil {
		slog.Error("failed to list runs", "err", err)
		return 1
	}
	slog.Debug("runs listed", "count", len(runs))
	return 0
}

func runExport(ctx context.Context, svc *pricer.Service, path string) int {
	f, err := os.Create(path)
	if err != nil {
		slog.Error("failed to create export file", "err", err, "path", path)
		return 1
	}
	defer f.Close()

	n, err := svc.Export(ctx, f)
	if err != nil {
		slog.Error("export failed", "err", err, "path", path)
		return 1
	}
	slog.Info("runs exported", "path", path, "count", n)
	return 0
}
