// Package redis implements the term store on a shared Redis instance, so a
// fleet of hosts can reuse one set of precomputed tables instead of each
// paying the population cost.
package redis

import (
	"context"
	"errors"

	goredis "github.com/redis/go-redis/v9"

	st "github.com/unkn0wn-root/fresnelvol/store"
)

var ErrNilClient = errors.New("redis store: nil client")

type Redis struct {
	rdb         goredis.UniversalClient
	closeClient bool
}

var _ st.Store = (*Redis)(nil)

type Config struct {
	Client      goredis.UniversalClient
	CloseClient bool // set true only if this store exclusively owns the client
}

func New(cfg Config) (*Redis, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Redis{rdb: cfg.Client, closeClient: cfg.CloseClient}, nil
}

func (p *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := p.rdb.Get(ctx, key).Bytes()
	if err == goredis.Nil {
		return nil, false, nil // miss
	}
	if err != nil {
		return nil, false, err // transport/server error
	}
	return b, true, nil
}

// Set stores without expiry: term tables are pure function values and never
// go stale, so aging them out would only force recomputation.
func (p *Redis) Set(ctx context.Context, key string, value []byte) error {
	return p.rdb.Set(ctx, key, value, 0).Err()
}

// Close releases the underlying redis client only when this store owns it.
// Safe to call multiple times; repeated calls become no-ops.
func (p *Redis) Close(context.Context) error {
	if p.closeClient {
		if err := p.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}
