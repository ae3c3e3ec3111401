package fresnelvol

import (
	"github.com/unkn0wn-root/fresnelvol/codec"
	"github.com/unkn0wn-root/fresnelvol/store"
	fsstore "github.com/unkn0wn-root/fresnelvol/store/fs"
)

// Options tune the estimator. Every field is optional: the zero value yields
// a filesystem-backed estimator under DefaultCacheDir with deterministic
// CBOR tables at DefaultPrecision.
type Options struct {
	Store  store.Store           // nil => filesystem store under DefaultCacheDir
	Codec  codec.Codec[TableDoc] // nil => deterministic CBOR
	Logger Logger                // nil => logging disabled

	Precision uint // bits; 0 => DefaultPrecision
	Terms     int  // series length; 0 => DefaultTerms(dim) per call
}

// New builds an Estimator and its TermCache from opts.
func New(opts Options) (*Estimator, error) {
	st := opts.Store
	if st == nil {
		var err error
		st, err = fsstore.New(DefaultCacheDir)
		if err != nil {
			return nil, err
		}
	}

	prec := coalesce(opts.Precision, DefaultPrecision)
	if err := checkPrecision(prec); err != nil {
		return nil, err
	}

	log := coalesce[Logger](opts.Logger, NopLogger{})
	cache, err := NewTermCache(st, opts.Codec, log)
	if err != nil {
		return nil, err
	}
	return &Estimator{
		prec:  prec,
		terms: opts.Terms,
		cache: cache,
		log:   log,
	}, nil
}

// Cache exposes the estimator's term cache so callers can run the explicit
// populate step (EnsurePopulated) ahead of Estimate.
func (e *Estimator) Cache() *TermCache { return e.cache }

// Precision reports the configured bit precision.
func (e *Estimator) Precision() uint { return e.prec }
