package notify

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/alejandrodnm/optionlab/internal/domain"
	"github.com/alejandrodnm/optionlab/internal/ports"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
)

// Console implementa ports.Renderer escribiendo tablas en texto.
type Console struct {
	out      io.Writer
	decimals int32
	color    bool
}

var _ ports.Renderer = (*Console)(nil)

// NewConsole crea un renderer que escribe a stdout.
func NewConsole(decimals int, colored bool) *Console {
	return NewConsoleWriter(os.Stdout, decimals, colored)
}

// NewConsoleWriter crea un renderer sobre cualquier writer (tests, archivos).
func NewConsoleWriter(w io.Writer, decimals int, colored bool) *Console {
	if decimals < 0 {
		decimals = 2
	}
	return &Console{out: w, decimals: int32(decimals), color: colored}
}

// RenderQuote imprime precio, delta y gamma de ambas patas.
func (c *Console) RenderQuote(_ context.Context, contract domain.OptionContract, q domain.QuoteResult) error {
	fmt.Fprintf(c.out, "\nS=%s K=%s σ=%s r=%s T=%s\n",
		c.num(contract.Spot), c.num(contract.Strike), c.num(contract.Volatility),
		c.num(contract.Rate), c.num(contract.Maturity))

	table := tablewriter.NewWriter(c.out)
	table.Header("", "Call", "Put")
	// griegas con 4 decimales fijos: con 2 la gamma suele quedar en 0.02
	rows := [][]any{
		{"Price", c.num(q.CallPrice), c.num(q.PutPrice)},
		{"Delta", fixed(q.CallDelta, 4), fixed(q.PutDelta, 4)},
		{"Gamma", fixed(q.CallGamma, 4), fixed(q.PutGamma, 4)},
	}
	for _, row := range rows {
		if err := table.Append(row...); err != nil {
			return fmt.Errorf("notify.RenderQuote: %s row: %w", row[0], err)
		}
	}
	return table.Render()
}

// RenderPnL imprime las dos etiquetas de PnL.
func (c *Console) RenderPnL(_ context.Context, pnl domain.PnLResult) error {
	fmt.Fprintf(c.out, "Call PnL: %s\n", c.signed(pnl.CallPnL))
	fmt.Fprintf(c.out, "Put PnL: %s\n", c.signed(pnl.PutPnL))
	return nil
}

// RenderHeatmaps imprime las matrices CALL y PUT. Filas = volatilidad,
// columnas = spot, cada celda anotada y coloreada rojo → amarillo → verde.
func (c *Console) RenderHeatmaps(_ context.Context, grid domain.SweepGrid) error {
	if err := c.renderHeatmap("CALL Prices", grid, grid.CallPrices); err != nil {
		return err
	}
	return c.renderHeatmap("PUT Prices", grid, grid.PutPrices)
}

func (c *Console) renderHeatmap(title string, grid domain.SweepGrid, data [][]float64) error {
	fmt.Fprintf(c.out, "\n=== %s (rows: volatility, cols: spot price) ===\n", title)

	header := make([]any, 0, len(grid.Spots)+1)
	header = append(header, "Vol \\ Spot")
	for _, s := range grid.Spots {
		header = append(header, fixed(s, 2))
	}

	lo, hi := bounds(data)
	table := tablewriter.NewWriter(c.out)
	table.Header(header...)
	for i, row := range data {
		cells := make([]any, 0, len(row)+1)
		cells = append(cells, fixed(grid.Vols[i], 2))
		for _, v := range row {
			cells = append(cells, c.heat(v, lo, hi))
		}
		if err := table.Append(cells...); err != nil {
			return fmt.Errorf("notify.RenderHeatmaps: %s row %d: %w", title, i, err)
		}
	}
	return table.Render()
}

// RenderRuns imprime el historial con las columnas de la tabla runs.
func (c *Console) RenderRuns(_ context.Context, runs []domain.Run) error {
	if len(runs) == 0 {
		fmt.Fprintln(c.out, "no previous runs")
		return nil
	}

	fmt.Fprintf(c.out, "\n=== Previous Runs (%d) ===\n", len(runs))
	table := tablewriter.NewWriter(c.out)
	table.Header("ID", "Current Price", "Strike Price", "Volatility", "Interest Rate",
		"Time to Maturity", "Call Purchase Price", "Put Purchase Price", "Call PnL", "Put PnL")

	for _, r := range runs {
		err := table.Append(
			fmt.Sprintf("%d", r.ID),
			c.num(r.Spot),
			c.num(r.Strike),
			c.num(r.Volatility),
			c.num(r.Rate),
			c.num(r.Maturity),
			c.num(r.CallPurchasePrice),
			c.num(r.PutPurchasePrice),
			c.signed(r.CallPnL),
			c.signed(r.PutPnL),
		)
		if err != nil {
			return fmt.Errorf("notify.RenderRuns: run %d: %w", r.ID, err)
		}
	}
	return table.Render()
}

// --- helpers ---

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
)

// num redondea a los decimales configurados (half away from zero, como el display original).
func (c *Console) num(v float64) string {
	return fixed(v, c.decimals)
}

// signed es num coloreado: verde ganancia, rojo pérdida.
func (c *Console) signed(v float64) string {
	s := c.num(v)
	switch {
	case !c.color:
		return s
	case v > 0:
		return green.Sprint(s)
	case v < 0:
		return red.Sprint(s)
	}
	return s
}

// heat colorea el valor según su posición en [lo, hi]: tercio inferior rojo,
// medio amarillo, superior verde.
func (c *Console) heat(v, lo, hi float64) string {
	s := c.num(v)
	if !c.color {
		return s
	}
	t := 1.0
	if hi > lo {
		t = (v - lo) / (hi - lo)
	}
	switch {
	case t < 1.0/3:
		return red.Sprint(s)
	case t < 2.0/3:
		return yellow.Sprint(s)
	}
	return green.Sprint(s)
}

func fixed(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Sprintf("%v", v)
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

func bounds(data [][]float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, row := range data {
		for _, v := range row {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	return lo, hi
}
