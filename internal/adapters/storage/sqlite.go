package storage

// sqlite.go: historial de cálculos de PnL.
//
// Una tabla `runs`, una fila por cálculo, append-only. El id lo asigna SQLite;
// el esquema es el mismo que el de la app original para poder abrir sus archivos.

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alejandrodnm/optionlab/internal/domain"
	"github.com/alejandrodnm/optionlab/internal/ports"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id                  INTEGER PRIMARY KEY,
    current_price       REAL,
    strike_price        REAL,
    volatility          REAL,
    interest_rate       REAL,
    time_to_maturity    REAL,
    call_purchase_price REAL,
    put_purchase_price  REAL,
    call_pnl            REAL,
    put_pnl             REAL
);
`

// SQLiteStorage implementa ports.RunStore usando SQLite (pure Go, sin CGo).
type SQLiteStorage struct {
	db *sql.DB
}

var _ ports.RunStore = (*SQLiteStorage)(nil)

// NewSQLiteStorage abre (o crea) la base de datos en la ruta dada y aplica el schema.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStorage: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer; además ":memory:" es por conexión
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStorage: apply schema: %w", err)
	}
	return &SQLiteStorage{db: db}, nil
}

// StoreRun inserta los nueve escalares del run. run.ID se ignora.
func (s *SQLiteStorage) StoreRun(ctx context.Context, run domain.Run) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (
			current_price, strike_price, volatility, interest_rate, time_to_maturity,
			call_purchase_price, put_purchase_price, call_pnl, put_pnl
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.Spot,
		run.Strike,
		run.Volatility,
		run.Rate,
		run.Maturity,
		run.CallPurchasePrice,
		run.PutPurchasePrice,
		run.CallPnL,
		run.PutPnL,
	)
	if err != nil {
		return 0, fmt.Errorf("storage.StoreRun: insert: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage.StoreRun: last insert id: %w", err)
	}
	return id, nil
}

// ListRuns devuelve todos los runs en orden de inserción.
func (s *SQLiteStorage) ListRuns(ctx context.Context) ([]domain.Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, current_price, strike_price, volatility, interest_rate, time_to_maturity,
		       call_purchase_price, put_purchase_price, call_pnl, put_pnl
		FROM runs
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("storage.ListRuns: query: %w", err)
	}
	defer rows.Close()

	var runs []domain.Run
	for rows.Next() {
		var r domain.Run
		// columnas REAL sin NOT NULL: archivos de la app original pueden tener NULLs
		var vals [9]sql.NullFloat64
		if err := rows.Scan(&r.ID,
			&vals[0], &vals[1], &vals[2], &vals[3], &vals[4],
			&vals[5], &vals[6], &vals[7], &vals[8],
		); err != nil {
			return nil, fmt.Errorf("storage.ListRuns: scan row: %w", err)
		}
		r.Spot = vals[0].Float64
		r.Strike = vals[1].Float64
		r.Volatility = vals[2].Float64
		r.Rate = vals[3].Float64
		r.Maturity = vals[4].Float64
		r.CallPurchasePrice = vals[5].Float64
		r.PutPurchasePrice = vals[6].Float64
		r.CallPnL = vals[7].Float64
		r.PutPnL = vals[8].Float64
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage.ListRuns: iterate: %w", err)
	}
	return runs, nil
}

// Close cierra la conexión a la base de datos.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
