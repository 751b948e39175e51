package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/rs/zerolog"
)

// ValidateRaw checks semantic constraints of a RawConfig.
func ValidateRaw(cfg RawConfig) error {
	var errs []string

	// log
	if cfg.Log != nil {
		if cfg.Log.Level != "" {
			if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil {
				errs = append(errs, fmt.Sprintf("log.level %q is not a known level", cfg.Log.Level))
			}
		}
		switch cfg.Log.Format {
		case "", "console", "json":
		default:
			errs = append(errs, "log.format must be one of: console, json")
		}
	}

	// listeners
	listeners := []struct {
		name string
		cfg  *ListenConfig
	}{{"http", cfg.HTTP}, {"resp", cfg.RESP}, {"grpc", cfg.GRPC}}
	for _, l := range listeners {
		if l.cfg == nil || l.cfg.Addr == nil || *l.cfg.Addr == "" {
			continue
		}
		if _, _, err := net.SplitHostPort(*l.cfg.Addr); err != nil {
			errs = append(errs, fmt.Sprintf("%s.addr %q must be host:port", l.name, *l.cfg.Addr))
		}
	}

	// limits
	if cfg.Limits != nil {
		if cfg.Limits.MaxBatch != nil && *cfg.Limits.MaxBatch <= 0 {
			errs = append(errs, "limits.max_batch must be >= 1")
		}
		if cfg.Limits.MaxSamples != nil && *cfg.Limits.MaxSamples <= 0 {
			errs = append(errs, "limits.max_samples must be >= 1")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
