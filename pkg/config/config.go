package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileNames are the project file names searched in a base directory, in order
var FileNames = []string{"ktlint.yaml", "ktlint.yml", ".ktlint.yaml", ".ktlint.yml"}

// ErrInvalidProject is returned when a project fails validation
var ErrInvalidProject = errors.New("invalid project configuration")

// Project is the lint configuration of a single base directory
type Project struct {
	// BaseDir is the absolute project directory. Relative paths resolve against it.
	BaseDir string `yaml:"-"`

	// File is the project file that was loaded, empty when defaults are used
	File string `yaml:"-"`

	Skip               bool             `yaml:"skip"`
	SourceRoots        []string         `yaml:"sourceRoots"`
	TestSourceRoots    []string         `yaml:"testSourceRoots"`
	IncludeTestSources bool             `yaml:"includeTestSources"`
	Includes           []string         `yaml:"includes"`
	Excludes           []string         `yaml:"excludes"`
	Experimental       bool             `yaml:"experimental"`
	DisabledRules      []string         `yaml:"disabledRules"`
	Android            bool             `yaml:"android"`
	Verbose            bool             `yaml:"verbose"`
	Encoding           string           `yaml:"encoding"`
	OutputDirectory    string           `yaml:"outputDirectory"`
	FailOnViolation    bool             `yaml:"failOnViolation"`
	Concurrency        int              `yaml:"concurrency"`
	Reporters          []ReporterConfig `yaml:"reporters"`
	Cache              CacheConfig      `yaml:"cache"`
	History            HistoryConfig    `yaml:"history"`
	Publish            PublishConfig    `yaml:"publish"`
	Telemetry          TelemetryConfig  `yaml:"telemetry"`
	MetricsFile        string           `yaml:"metricsFile"`
	LogLevel           string           `yaml:"logLevel"`
}

// ReporterConfig selects a reporter and where it writes
type ReporterConfig struct {
	Name        string `yaml:"name"`
	Output      string `yaml:"output"`
	Verbose     bool   `yaml:"verbose"`
	GroupByFile bool   `yaml:"groupByFile"`
}

// CacheConfig configures the lint-result cache
type CacheConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Size     int           `yaml:"size"`
	TTL      time.Duration `yaml:"ttl"`
	RedisURL string        `yaml:"redisUrl"`
}

// HistoryConfig configures the run history store
type HistoryConfig struct {
	DSN string `yaml:"dsn"`
}

// PublishConfig configures report uploads to S3
type PublishConfig struct {
	Bucket       string `yaml:"bucket"`
	Prefix       string `yaml:"prefix"`
	Region       string `yaml:"region"`
	Endpoint     string `yaml:"endpoint"`
	AccessKey    string `yaml:"accessKey"`
	SecretKey    string `yaml:"secretKey"`
	UsePathStyle bool   `yaml:"usePathStyle"`
}

// TelemetryConfig configures OpenTelemetry tracing
type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Endpoint    string `yaml:"endpoint"`
	ServiceName string `yaml:"serviceName"`
	Insecure    bool   `yaml:"insecure"`
}

// DefaultProject returns the default project for baseDir
func DefaultProject(baseDir string) *Project {
	return &Project{
		BaseDir:            baseDir,
		SourceRoots:        []string{"src/main/kotlin"},
		TestSourceRoots:    []string{"src/test/kotlin"},
		IncludeTestSources: true,
		Includes:           []string{"**/*.kt", "**/*.kts"},
		Excludes:           []string{},
		Encoding:           "UTF-8",
		OutputDirectory:    "target/site",
		FailOnViolation:    true,
		Cache: CacheConfig{
			Enabled: true,
			Size:    4096,
			TTL:     24 * time.Hour,
		},
		Telemetry: TelemetryConfig{
			Endpoint:    "localhost:4317",
			ServiceName: "ktlint-report",
			Insecure:    true,
		},
		LogLevel: "info",
	}
}

// Load reads a project file. The base directory is the file's directory.
func Load(path string) (*Project, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, err
	}

	project := DefaultProject(filepath.Dir(abs))
	if err := yaml.Unmarshal(data, project); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", abs, err)
	}
	project.File = abs

	return project, nil
}

// LoadFromDir searches dir for a project file, falling back to defaults
func LoadFromDir(dir string) (*Project, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("project directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project directory: %s is not a directory", abs)
	}

	for _, name := range FileNames {
		path := filepath.Join(abs, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}

	return DefaultProject(abs), nil
}

// Resolve makes a project-relative path absolute
func (p *Project) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.BaseDir, path)
}

// Roots returns the source roots to scan, test roots last
func (p *Project) Roots() []string {
	roots := make([]string, 0, len(p.SourceRoots)+len(p.TestSourceRoots))
	roots = append(roots, p.SourceRoots...)
	if p.IncludeTestSources {
		roots = append(roots, p.TestSourceRoots...)
	}
	return roots
}

// OutputDir returns the absolute report output directory
func (p *Project) OutputDir() string {
	return p.Resolve(p.OutputDirectory)
}

// Validate checks if the project is usable
func (p *Project) Validate() error {
	if p.BaseDir == "" {
		return fmt.Errorf("%w: base directory is required", ErrInvalidProject)
	}
	if len(p.Includes) == 0 {
		return fmt.Errorf("%w: at least one include pattern is required", ErrInvalidProject)
	}
	for i, r := range p.Reporters {
		if r.Name == "" {
			return fmt.Errorf("%w: reporter #%d has no name", ErrInvalidProject, i+1)
		}
	}
	if p.Concurrency < 0 {
		return fmt.Errorf("%w: concurrency must not be negative", ErrInvalidProject)
	}
	if p.Cache.Size < 0 {
		return fmt.Errorf("%w: cache size must not be negative", ErrInvalidProject)
	}
	if p.Telemetry.Enabled && p.Telemetry.Endpoint == "" {
		return fmt.Errorf("%w: telemetry endpoint is required when telemetry is enabled", ErrInvalidProject)
	}
	if p.Publish.Bucket == "" && (p.Publish.Prefix != "" || p.Publish.Endpoint != "") {
		return fmt.Errorf("%w: publish bucket is required", ErrInvalidProject)
	}

	return nil
}
