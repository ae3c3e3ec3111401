// Package ristretto implements an in-process term store with cost-based
// admission. Like the bigcache store it is ephemeral: a rejected or evicted
// table is recomputed on the next populate.
package ristretto

import (
	"context"
	"errors"

	rc "github.com/dgraph-io/ristretto"

	st "github.com/unkn0wn-root/fresnelvol/store"
)

type Store struct {
	c *rc.Cache
}

var _ st.Store = (*Store)(nil)

type Config struct {
	NumCounters int64
	MaxCost     int64
	BufferItems int64
	Metrics     bool
}

func New(cfg Config) (*Store, error) {
	if cfg.NumCounters <= 0 || cfg.MaxCost <= 0 || cfg.BufferItems <= 0 {
		return nil, errors.New("ristretto store: invalid config")
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &Store{c: c}, nil
}

func (p *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := p.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, _ := v.([]byte)
	if b == nil {
		// drop unexpected entry shape
		p.c.Del(key)
		return nil, false, nil
	}
	return b, true, nil
}

// Set waits for the buffered write to land so that the populate-then-retrieve
// protocol sees its own write. Admission may still reject the entry under
// memory pressure; the caller then observes a miss and recomputes.
func (p *Store) Set(_ context.Context, key string, value []byte) error {
	p.c.Set(key, value, int64(len(value)))
	p.c.Wait()
	return nil
}

func (p *Store) Close(_ context.Context) error {
	p.c.Wait()
	p.c.Close()
	return nil
}

// Metrics exposes ristretto metrics when enabled in Config.
func (p *Store) Metrics() *rc.Metrics { return p.c.Metrics }
