package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Paths helper for default/profile files.
type Paths struct {
	BaseDir string // base directory, e.g., /etc/pcg32
}

func (p Paths) DefaultPath() string {
	return filepath.Join(p.BaseDir, "default.yaml")
}
func (p Paths) ProfilePath(profile string) string {
	return filepath.Join(p.BaseDir, profile+".yaml")
}

// Loader reads YAML configs and merges default → profile.
type Loader struct {
	paths Paths

	mu    sync.RWMutex
	cache map[string]RawConfig // key: profile name, "" for default only
}

// NewLoader creates a config loader with the given base directory.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		cache: make(map[string]RawConfig),
	}
}

// Paths returns the files that make up a profile, default first.
func (l *Loader) Paths(profile string) []string {
	if profile == "" {
		return []string{l.paths.DefaultPath()}
	}
	return []string{l.paths.DefaultPath(), l.paths.ProfilePath(profile)}
}

// LoadMerged loads and merges default → profile (profile optional).
// It returns the merged RawConfig (without normalization).
func (l *Loader) LoadMerged(profile string) (RawConfig, error) {
	l.mu.RLock()
	if cfg, ok := l.cache[profile]; ok {
		l.mu.RUnlock()
		return cfg, nil
	}
	l.mu.RUnlock()

	defCfg, err := readYAML(l.paths.DefaultPath())
	if err != nil {
		return RawConfig{}, fmt.Errorf("read default: %w", err)
	}
	merged := defCfg
	if profile != "" {
		profCfg, err := readYAML(l.paths.ProfilePath(profile))
		if err != nil {
			return RawConfig{}, fmt.Errorf("read profile %s: %w", profile, err)
		}
		merged = mergeRaw(defCfg, profCfg)
	}

	l.mu.Lock()
	l.cache[""] = defCfg
	l.cache[profile] = merged
	l.mu.Unlock()

	return merged, nil
}

// Load merges, validates and normalizes a profile.
func (l *Loader) Load(profile string) (Config, error) {
	raw, err := l.LoadMerged(profile)
	if err != nil {
		return Config{}, err
	}
	if err := ValidateRaw(raw); err != nil {
		return Config{}, err
	}
	return Normalize(raw), nil
}

// Invalidate clears loader's cache. Call after hot-reload detects changes.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]RawConfig)
}

// readYAML loads a YAML file into RawConfig. Missing files return zero cfg, no error.
func readYAML(path string) (RawConfig, error) {
	var cfg RawConfig
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, nil
		}
		return RawConfig{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawConfig{}, err
	}
	return cfg, nil
}

// mergeRaw overlays b on a: every field b sets wins.
func mergeRaw(a, b RawConfig) RawConfig {
	out := a

	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}

	if b.Log != nil {
		lc := LogConfig{}
		if out.Log != nil {
			lc = *out.Log
		}
		if b.Log.Level != "" {
			lc.Level = b.Log.Level
		}
		if b.Log.Format != "" {
			lc.Format = b.Log.Format
		}
		out.Log = &lc
	}

	out.HTTP = mergeListen(out.HTTP, b.HTTP)
	out.RESP = mergeListen(out.RESP, b.RESP)
	out.GRPC = mergeListen(out.GRPC, b.GRPC)

	if b.Limits != nil {
		lim := LimitsConfig{}
		if out.Limits != nil {
			lim = *out.Limits
		}
		if b.Limits.MaxBatch != nil {
			lim.MaxBatch = b.Limits.MaxBatch
		}
		if b.Limits.MaxSamples != nil {
			lim.MaxSamples = b.Limits.MaxSamples
		}
		out.Limits = &lim
	}

	return out
}

func mergeListen(a, b *ListenConfig) *ListenConfig {
	switch {
	case b == nil:
		return a
	case a == nil || b.Addr != nil:
		c := *b
		return &c
	default:
		return a
	}
}

// Normalize fills unset fields with the built-in defaults.
func Normalize(raw RawConfig) Config {
	cfg := Config{
		Version:    raw.Version,
		LogLevel:   DefaultLogLevel,
		LogFormat:  DefaultLogFormat,
		HTTPAddr:   DefaultHTTPAddr,
		MaxBatch:   DefaultMaxBatch,
		MaxSamples: DefaultMaxSamples,
	}
	if raw.Log != nil {
		if raw.Log.Level != "" {
			cfg.LogLevel = raw.Log.Level
		}
		if raw.Log.Format != "" {
			cfg.LogFormat = raw.Log.Format
		}
	}
	if raw.HTTP != nil && raw.HTTP.Addr != nil {
		cfg.HTTPAddr = *raw.HTTP.Addr
	}
	if raw.RESP != nil && raw.RESP.Addr != nil {
		cfg.RESPAddr = *raw.RESP.Addr
	}
	if raw.GRPC != nil && raw.GRPC.Addr != nil {
		cfg.GRPCAddr = *raw.GRPC.Addr
	}
	if raw.Limits != nil {
		if raw.Limits.MaxBatch != nil {
			cfg.MaxBatch = *raw.Limits.MaxBatch
		}
		if raw.Limits.MaxSamples != nil {
			cfg.MaxSamples = *raw.Limits.MaxSamples
		}
	}
	return cfg
}
