package config

import (
	"log"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv     = "SCREENING_CONFIG"
	databaseDriverEnv = "SCREENING_DATABASE_DRIVER"
	databaseDSNEnv    = "SCREENING_DATABASE_DSN"
	logLevelEnv       = "SCREENING_LOG_LEVEL"
	pubchemURLEnv     = "SCREENING_PUBCHEM_URL"
	s3BucketEnv       = "SCREENING_S3_BUCKET"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	PubChem   PubChemConfig   `yaml:"pubchem"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
	Compounds CompoundsConfig `yaml:"compounds"`
	Database  DatabaseConfig  `yaml:"database"`
	Export    ExportConfig    `yaml:"export"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Artifacts ArtifactsConfig `yaml:"artifacts"`
}

// LoggingConfig selects level and handler format ("text" or "json").
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// PubChemConfig describes how to reach the property service.
type PubChemConfig struct {
	BaseURL   string        `yaml:"baseUrl"`
	UserAgent string        `yaml:"userAgent"`
	Timeout   time.Duration `yaml:"timeout"`
}

// PipelineConfig tunes the screening loop.
type PipelineConfig struct {
	Pause time.Duration `yaml:"pause"`
	// Seed pins the affinity generator; zero draws a fresh seed each run.
	Seed uint64 `yaml:"seed"`
}

// CompoundsConfig lists the compounds to screen by category.
type CompoundsConfig struct {
	Natural   []string `yaml:"natural"`
	Synthetic []string `yaml:"synthetic"`
}

// DatabaseConfig selects the SQL driver ("sqlite" or "pgx") and its DSN.
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// ExportConfig lists the files written after each run.
type ExportConfig struct {
	Targets []ExportTarget `yaml:"targets"`
}

// ExportTarget pairs a format with its output path.
type ExportTarget struct {
	Format string `yaml:"format"`
	Path   string `yaml:"path"`
}

// DashboardConfig describes the rendered figure.
type DashboardConfig struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
	Title  string `yaml:"title"`
	DPI    int    `yaml:"dpi"`
}

// MetricsConfig points at a node-exporter textfile; empty disables it.
type MetricsConfig struct {
	TextfilePath string `yaml:"textfilePath"`
}

// ArtifactsConfig describes the optional S3-compatible upload target.
type ArtifactsConfig struct {
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	PathStyle bool   `yaml:"pathStyle"`
}

// Enabled reports whether uploads are configured.
func (a ArtifactsConfig) Enabled() bool {
	return a.Bucket != ""
}

// Load reads YAML configuration (if present) and applies environment overrides.
// An empty path falls back to the SCREENING_CONFIG environment variable.
func Load(path string) Config {
	cfg := defaultConfig()

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDriverEnv); v != "" {
		c.Database.Driver = v
	}

	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(pubchemURLEnv); v != "" {
		c.PubChem.BaseURL = strings.TrimRight(v, "/")
	}

	if v := os.Getenv(s3BucketEnv); v != "" {
		c.Artifacts.Bucket = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		base.Logging.Format = override.Logging.Format
	}

	if override.PubChem.BaseURL != "" {
		base.PubChem.BaseURL = override.PubChem.BaseURL
	}
	if override.PubChem.UserAgent != "" {
		base.PubChem.UserAgent = override.PubChem.UserAgent
	}
	if override.PubChem.Timeout > 0 {
		base.PubChem.Timeout = override.PubChem.Timeout
	}

	if override.Pipeline.Pause > 0 {
		base.Pipeline.Pause = override.Pipeline.Pause
	}
	if override.Pipeline.Seed != 0 {
		base.Pipeline.Seed = override.Pipeline.Seed
	}

	if len(override.Compounds.Natural) > 0 || len(override.Compounds.Synthetic) > 0 {
		base.Compounds = override.Compounds
	}

	if override.Database.Driver != "" {
		base.Database.Driver = override.Database.Driver
	}
	if override.Database.DSN != "" {
		base.Database.DSN = override.Database.DSN
	}

	if len(override.Export.Targets) > 0 {
		base.Export.Targets = override.Export.Targets
	}

	if override.Dashboard.Input != "" {
		base.Dashboard.Input = override.Dashboard.Input
	}
	if override.Dashboard.Output != "" {
		base.Dashboard.Output = override.Dashboard.Output
	}
	if override.Dashboard.Title != "" {
		base.Dashboard.Title = override.Dashboard.Title
	}
	if override.Dashboard.DPI > 0 {
		base.Dashboard.DPI = override.Dashboard.DPI
	}

	if override.Metrics.TextfilePath != "" {
		base.Metrics.TextfilePath = override.Metrics.TextfilePath
	}

	if override.Artifacts.Bucket != "" {
		base.Artifacts = override.Artifacts
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "text"},
		PubChem: PubChemConfig{
			BaseURL:   "https://pubchem.ncbi.nlm.nih.gov/rest/pug",
			UserAgent: "StudentPortfolioProject/1.0",
			Timeout:   10 * time.Second,
		},
		Pipeline: PipelineConfig{Pause: time.Second},
		Compounds: CompoundsConfig{
			Natural: []string{
				"Dihydrofolate",
				"Folic Acid",
				"Tetrahydrofolate",
				"7,8-Dihydrobiopterin",
				"L-Methionine",
			},
			Synthetic: []string{
				"Methotrexate",
				"Pemetrexed",
				"Aminopterin",
				"Trimethoprim",
				"Pyrimethamine",
			},
		},
		Database: DatabaseConfig{Driver: "sqlite", DSN: "results.db"},
		Export: ExportConfig{Targets: []ExportTarget{
			{Format: "csv", Path: "natvssynt.csv"},
		}},
		Dashboard: DashboardConfig{
			Input:  "natvssynt.csv",
			Output: "dashboard.png",
			Title:  "Virtual Screening Dashboard",
			DPI:    300,
		},
	}
}
