// types.go
package config

// Raw config loaded from YAML; pointer fields tell "unset" apart from zero.
type RawConfig struct {
	Version string        `yaml:"version"`
	Log     *LogConfig    `yaml:"log,omitempty"`
	HTTP    *ListenConfig `yaml:"http,omitempty"`
	RESP    *ListenConfig `yaml:"resp,omitempty"`
	GRPC    *ListenConfig `yaml:"grpc,omitempty"`
	Limits  *LimitsConfig `yaml:"limits,omitempty"`
	Notes   string        `yaml:"notes,omitempty"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // trace, debug, info, warn, error, disabled
	Format string `yaml:"format"` // console | json
}

// ListenConfig configures one front-end. An empty address disables it.
type ListenConfig struct {
	Addr *string `yaml:"addr"`
}

type LimitsConfig struct {
	MaxBatch   *int `yaml:"max_batch"`   // values per next/next_float call
	MaxSamples *int `yaml:"max_samples"` // draws per stats call
}

// Config is the normalized configuration used by the server.
type Config struct {
	Version    string // effective config version for tracing
	LogLevel   string
	LogFormat  string
	HTTPAddr   string
	RESPAddr   string
	GRPCAddr   string
	MaxBatch   int
	MaxSamples int
}

// Built-in values used when neither file sets a field.
const (
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "console"
	DefaultHTTPAddr   = ":8080"
	DefaultMaxBatch   = 1024
	DefaultMaxSamples = 1000000
)
