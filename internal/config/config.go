package config

import (
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/hyperdom/internal/errors"
)

const (
	// ConfigFileName is the name of the JSON configuration file.
	ConfigFileName = "hyperdom.json"

	// DefaultPort is the default preview server port.
	DefaultPort = 3000

	// DefaultHost is the default preview server host.
	DefaultHost = "localhost"

	// DefaultScript is the script rendered when none is given.
	DefaultScript = "main.js"

	// DefaultMetricsPath is where the preview server exposes Prometheus
	// metrics.
	DefaultMetricsPath = "/metrics"

	// DefaultTracerName is the OpenTelemetry tracer used by the preview
	// server.
	DefaultTracerName = "hyperdom"

	// DefaultNamespace is the Prometheus metrics namespace.
	DefaultNamespace = "hyperdom"

	// DefaultRegion is the S3 region used when none is configured.
	DefaultRegion = "us-east-1"
)

// fileNames lists the configuration files Load looks for, in order.
var fileNames = []string{ConfigFileName, "hyperdom.yaml", "hyperdom.yml"}

// Config represents the complete hyperdom configuration.
type Config struct {
	// Script is the path of the script to render, relative to the config
	// file.
	Script string `json:"script,omitempty" yaml:"script,omitempty"`

	// Server contains preview server configuration.
	Server ServerConfig `json:"server,omitempty" yaml:"server,omitempty"`

	// Publish contains snapshot upload configuration.
	Publish PublishConfig `json:"publish,omitempty" yaml:"publish,omitempty"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `json:"metrics,omitempty" yaml:"metrics,omitempty"`

	// Log contains logging configuration.
	Log LogConfig `json:"log,omitempty" yaml:"log,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains preview server settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty" yaml:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty" yaml:"port,omitempty"`

	// MetricsPath is the route serving Prometheus metrics.
	MetricsPath string `json:"metricsPath,omitempty" yaml:"metricsPath,omitempty"`

	// TracerName is the OpenTelemetry tracer name for request spans.
	TracerName string `json:"tracerName,omitempty" yaml:"tracerName,omitempty"`
}

// PublishConfig contains S3 upload settings.
type PublishConfig struct {
	// Bucket is the destination bucket.
	Bucket string `json:"bucket,omitempty" yaml:"bucket,omitempty"`

	// Prefix is prepended to every object key.
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`

	// Region is the bucket region.
	Region string `json:"region,omitempty" yaml:"region,omitempty"`

	// Endpoint overrides the S3 endpoint, e.g. for MinIO.
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`

	// Gzip uploads the snapshot gzip-encoded.
	Gzip bool `json:"gzip,omitempty" yaml:"gzip,omitempty"`

	// PathStyle forces path-style addressing.
	PathStyle bool `json:"pathStyle,omitempty" yaml:"pathStyle,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Namespace is the metrics namespace.
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Script: DefaultScript,
		Server: ServerConfig{
			Host:        DefaultHost,
			Port:        DefaultPort,
			MetricsPath: DefaultMetricsPath,
			TracerName:  DefaultTracerName,
		},
		Publish: PublishConfig{
			Region: DefaultRegion,
		},
		Metrics: MetricsConfig{
			Namespace: DefaultNamespace,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from the specified directory. It looks for
// hyperdom.json, hyperdom.yaml and hyperdom.yml in that order.
func Load(dir string) (*Config, error) {
	for _, name := range fileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("E020").
		WithDetail("No " + ConfigFileName + " found in " + dir)
}

// LoadFile reads configuration from the specified file path. Files ending
// in .yaml or .yml are parsed as YAML, anything else as JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E020").
				WithDetail("No config file at " + path)
		}
		return nil, errors.New("E021").Wrap(err)
	}

	cfg := New()
	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.New("E021").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error())
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path, as YAML when the
// extension asks for it.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("E021").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E021").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Script == "" {
		c.Script = DefaultScript
	}

	// Server
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.MetricsPath == "" {
		c.Server.MetricsPath = DefaultMetricsPath
	}
	if !strings.HasPrefix(c.Server.MetricsPath, "/") {
		c.Server.MetricsPath = "/" + c.Server.MetricsPath
	}
	if c.Server.TracerName == "" {
		c.Server.TracerName = DefaultTracerName
	}

	// Publish
	if c.Publish.Region == "" {
		c.Publish.Region = DefaultRegion
	}

	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("E022").
			WithDetail("Port must be between 0 and 65535")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return errors.New("E021").
			WithDetailf("Unknown log format %q", c.Log.Format).
			WithSuggestion("Use \"text\" or \"json\"")
	}
	return nil
}

// Address returns the listen address of the preview server.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// URL returns the preview server URL.
func (c *Config) URL() string {
	return "http://" + c.Address()
}

// ScriptPath returns the script path resolved against the config directory.
func (c *Config) ScriptPath() string {
	if filepath.IsAbs(c.Script) {
		return c.Script
	}
	return filepath.Join(c.Dir(), c.Script)
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if name == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, errors.New("E021").
			WithDetailf("Unknown log level %q", name).
			WithSuggestion("Use debug, info, warn or error")
	}
	return level, nil
}

// NewLogger builds a logger writing to w in the configured format.
func (l LogConfig) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := ParseLevel(l.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(l.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	for _, name := range fileNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing a config file, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E020").
				WithDetail("No " + ConfigFileName + " found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory
// or the nearest parent that has one. Without any config file it returns
// the defaults.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		if errors.HasCode(err, "E020") {
			return New(), nil
		}
		return nil, err
	}

	return Load(root)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
