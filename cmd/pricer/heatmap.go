package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/alejandrodnm/optionlab/internal/adapters/export"
	"github.com/alejandrodnm/optionlab/internal/application/pricer"
	"github.com/alejandrodnm/optionlab/internal/domain"
)

func runHeatmap(ctx context.Context, svc *pricer.Service, contract domain.OptionContract, gridCSV string) int {
	grid, err := svc.Heatmap(ctx, contract)
	if err != nil {
		var de *domain.DomainError
		if errors.As(err, &de) {
			slog.Error("invalid sweep input", "field", de.Field, "value", de.Value, "reason", de.Reason)
		} else {
			slog.Error("heatmap failed", "err", err)
		}
		return 1
	}

	rows, cols := grid.Shape()
	slog.Info("heatmap generated", "rows", rows, "cols", cols)

	if gridCSV == "" {
		return 0
	}

	f, err := os.Create(gridCSV)
	if err != nil {
		slog.Error("failed to create grid csv", "err", err, "path", gridCSV)
		return 1
	}
	defer f.Close()

	if err := export.WriteGrid(f, grid); err != nil {
		slog.Error("failed to write grid csv", "err", err, "path", gridCSV)
		return 1
	}
	slog.Info("grid exported", "path", gridCSV, "cells", rows*cols)
	return 0
}
