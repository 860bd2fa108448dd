package ports

import (
	"io"

	"github.com/alejandrodnm/optionlab/internal/domain"
)

// RunExporter serializa el historial de runs a un writer (CSV, etc.).
type RunExporter interface {
	WriteRuns(w io.Writer, runs []domain.Run) error
}
