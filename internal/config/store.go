package config

import "sync/atomic"

// Store holds the active Config. Readers never block the watcher.
type Store struct {
	p atomic.Pointer[Config]
}

func NewStore(cfg Config) *Store {
	s := &Store{}
	s.Set(cfg)
	return s
}

func (s *Store) Get() Config {
	return *s.p.Load()
}

func (s *Store) Set(cfg Config) {
	s.p.Store(&cfg)
}
