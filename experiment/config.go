package experiment

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/timpalpant/nashcontest/contest"
)

// Mode selects which (M_A, M_B) pairs are swept.
type Mode string

const (
	ModeAll        Mode = "all"
	ModeSymmetric  Mode = "symmetric"
	ModeAsymmetric Mode = "asymmetric"
)

func (m Mode) Validate() error {
	switch m {
	case ModeAll, ModeSymmetric, ModeAsymmetric:
		return nil
	}
	return fmt.Errorf("unknown mode %q (expected all, symmetric or asymmetric)", string(m))
}

// Includes reports whether the game belongs to this mode.
func (m Mode) Includes(p contest.Params) bool {
	switch m {
	case ModeSymmetric:
		return p.Symmetric()
	case ModeAsymmetric:
		return !p.Symmetric()
	}
	return true
}

// Config describes one experiment run.
type Config struct {
	Mode Mode `hcl:"mode,optional"`
	// Exclusive upper bounds of the parameter sweep.
	MaxR  int `hcl:"max_r,optional"`
	MaxMA int `hcl:"max_m_a,optional"`
	MaxMB int `hcl:"max_m_b,optional"`

	// Directory of cached game tables.
	GamesDir string `hcl:"games_dir,optional"`
	// Store game tables gzip compressed.
	CompressGames bool `hcl:"compress_games,optional"`
	// Number of loaded tables kept in memory.
	CacheSize int `hcl:"cache_size,optional"`

	ResultsCSV string `hcl:"results_csv,optional"`
	// Optional .npz of equilibrium counts per budget.
	HeatmapNPZ string `hcl:"heatmap_npz,optional"`

	// Number of games solved concurrently.
	Workers int `hcl:"workers,optional"`
	// Log and skip games whose solve fails instead of aborting the run.
	SkipInvalid bool `hcl:"skip_invalid,optional"`

	Trace *TraceConfig `hcl:"trace,block"`
}

// TraceConfig enables step-by-step diagnostics.
type TraceConfig struct {
	Solver    bool `hcl:"solver,optional"`
	Predictor bool `hcl:"predictor,optional"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// LoadConfig reads an HCL configuration file. A missing file yields
// DefaultConfig.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Mode == "" {
		c.Mode = ModeAll
	}
	if c.MaxR == 0 {
		c.MaxR = 10
	}
	if c.MaxMA == 0 {
		c.MaxMA = 10
	}
	if c.MaxMB == 0 {
		c.MaxMB = 10
	}
	if c.GamesDir == "" {
		c.GamesDir = "./games"
	}
	if c.CacheSize == 0 {
		c.CacheSize = 128
	}
	if c.ResultsCSV == "" {
		c.ResultsCSV = fmt.Sprintf("results_%s.csv", c.Mode)
	}
	if c.Workers == 0 {
		c.Workers = 1
	}
	if c.Trace == nil {
		c.Trace = &TraceConfig{}
	}
}

func (c *Config) Validate() error {
	if err := c.Mode.Validate(); err != nil {
		return err
	}
	if c.MaxR < 2 || c.MaxMA < 2 || c.MaxMB < 2 {
		return fmt.Errorf("sweep bounds must be at least 2, got max_r=%d max_m_a=%d max_m_b=%d",
			c.MaxR, c.MaxMA, c.MaxMB)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.CacheSize < 1 {
		return fmt.Errorf("cache_size must be positive, got %d", c.CacheSize)
	}
	return nil
}

// Games lists the games of the sweep in order: R in [1, MaxR),
// M_A in [1, MaxMA), M_B in [M_A, MaxMB), filtered by Mode.
func (c *Config) Games() []contest.Params {
	var games []contest.Params
	for r := 1; r < c.MaxR; r++ {
		for ma := 1; ma < c.MaxMA; ma++ {
			for mb := ma; mb < c.MaxMB; mb++ {
				p := contest.Params{R: r, MA: ma, MB: mb}
				if c.Mode.Includes(p) {
					games = append(games, p)
				}
			}
		}
	}
	return games
}
