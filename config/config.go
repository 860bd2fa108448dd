package config

import (
	"fmt"
	"os"

	"github.com/alejandrodnm/optionlab/internal/domain"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa del pricer.
type Config struct {
	Contract ContractConfig `yaml:"contract"`
	Sweep    SweepConfig    `yaml:"sweep"`
	Storage  StorageConfig  `yaml:"storage"`
	Log      LogConfig      `yaml:"log"`
	Display  DisplayConfig  `yaml:"display"`
}

// ContractConfig son los inputs por defecto (los mismos que la UI original).
type ContractConfig struct {
	Spot              float64  `yaml:"spot"`
	Strike            float64  `yaml:"strike"`
	Volatility        float64  `yaml:"volatility"`
	Rate              *float64 `yaml:"rate"` // nil = 0.05; 0 y negativos son válidos
	Maturity          float64  `yaml:"maturity"`
	CallPurchasePrice float64  `yaml:"call_purchase_price"`
	PutPurchasePrice  float64  `yaml:"put_purchase_price"`
}

// SweepConfig controla la grilla del heatmap.
type SweepConfig struct {
	SpotSpan float64 `yaml:"spot_span"` // fracción a cada lado del spot
	VolMode  string  `yaml:"vol_mode"`  // floor | symmetric
	VolFloor float64 `yaml:"vol_floor"` // floor: fracción mínima de la vol base
	VolSpan  float64 `yaml:"vol_span"`  // symmetric: fracción a cada lado de la vol base
	Samples  int     `yaml:"samples"`
	Workers  int     `yaml:"workers"` // 0 = NumCPU
}

// StorageConfig controla dónde se persisten los runs.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // ruta al archivo SQLite, o ":memory:"
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// DisplayConfig controla el formato numérico de la consola.
type DisplayConfig struct {
	Decimals *int  `yaml:"decimals"` // nil = 2
	Color    *bool `yaml:"color"`    // nil = true
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Un path vacío o inexistente no es error: se usan los defaults.
// El YAML se decodifica sobre los defaults, así que una clave presente en el
// archivo siempre gana, aunque valga 0.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	cfg := defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// sin archivo: defaults + env
		case err != nil:
			return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
			}
		}
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// OptionContract devuelve el contrato por defecto configurado.
func (c *Config) OptionContract() domain.OptionContract {
	return domain.OptionContract{
		Maturity:   c.Contract.Maturity,
		Strike:     c.Contract.Strike,
		Spot:       c.Contract.Spot,
		Volatility: c.Contract.Volatility,
		Rate:       *c.Contract.Rate,
	}
}

// SweepParams convierte la sección sweep a parámetros del dominio.
func (c *Config) SweepParams() domain.SweepParams {
	return domain.SweepParams{
		SpotSpan: c.Sweep.SpotSpan,
		VolMode:  domain.VolMode(c.Sweep.VolMode),
		VolFloor: c.Sweep.VolFloor,
		VolSpan:  c.Sweep.VolSpan,
		Samples:  c.Sweep.Samples,
	}
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("OPTIONLAB_DB"); v != "" {
		cfg.Storage.DSN = v
	}
}

// defaults son los inputs de la UI original y la grilla de referencia.
func defaults() Config {
	rate := 0.05
	decimals := 2
	colored := true
	sweep := domain.DefaultSweepParams()
	return Config{
		Contract: ContractConfig{
			Spot:              100,
			Strike:            100,
			Volatility:        0.2,
			Rate:              &rate,
			Maturity:          1,
			CallPurchasePrice: 10,
			PutPurchasePrice:  10,
		},
		Sweep: SweepConfig{
			SpotSpan: sweep.SpotSpan,
			VolMode:  string(sweep.VolMode),
			VolFloor: sweep.VolFloor,
			VolSpan:  sweep.VolSpan,
			Samples:  sweep.Samples,
		},
		Storage: StorageConfig{DSN: "option_pricing.db"},
		Log:     LogConfig{Level: "info", Format: "text"},
		Display: DisplayConfig{Decimals: &decimals, Color: &colored},
	}
}

// setDefaults rellena lo que el YAML dejó explícitamente vacío (null o "").
// Los números no se tocan: un 0 escrito a mano llega tal cual al dominio,
// que es quien lo valida.
func setDefaults(cfg *Config) {
	def := defaults()
	if cfg.Contract.Rate == nil {
		cfg.Contract.Rate = def.Contract.Rate
	}
	if cfg.Sweep.VolMode == "" {
		cfg.Sweep.VolMode = def.Sweep.VolMode
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = def.Storage.DSN
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = def.Log.Format
	}
	if cfg.Display.Decimals == nil {
		cfg.Display.Decimals = def.Display.Decimals
	}
	if cfg.Display.Color == nil {
		cfg.Display.Color = def.Display.Color
	}
}
