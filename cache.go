package fresnelvol

import (
	"context"
	"fmt"

	"github.com/unkn0wn-root/fresnelvol/codec"
	"github.com/unkn0wn-root/fresnelvol/internal/wire"
	"github.com/unkn0wn-root/fresnelvol/store"
)

// TermCache is the persistent table of precomputed Fresnel series terms,
// keyed by (dimension, precision). Populate and retrieve are deliberately
// separate operations: populate is idempotent and side-effecting, retrieve
// is a pure fail-fast read. Chaining populate-then-retrieve gives a strict
// usability guarantee without recomputing values from prior runs.
type TermCache struct {
	store store.Store
	codec codec.Codec[TableDoc]
	log   Logger
}

// NewTermCache builds a cache over the given byte store. A nil codec
// defaults to deterministic CBOR; a nil logger disables logging.
func NewTermCache(st store.Store, c codec.Codec[TableDoc], log Logger) (*TermCache, error) {
	if st == nil {
		return nil, fmt.Errorf("fresnelvol: store is required")
	}
	if c == nil {
		c = codec.MustCBOR[TableDoc](true)
	}
	return &TermCache{
		store: st,
		codec: c,
		log:   coalesce[Logger](log, NopLogger{}),
	}, nil
}

// TableKey derives the storage key for a (dimension, precision) table.
func TableKey(dim int, prec uint) string {
	return fmt.Sprintf("dim%d-prec%d", dim, prec)
}

// EnsurePopulated guarantees the table for (dim, prec) contains every series
// index in [1, terms]. Existing indices are never recomputed: a request for
// fewer terms than stored is a no-op and leaves the stored bytes untouched,
// a request for more appends only the missing indices and rewrites the table
// as a single atomic unit.
func (tc *TermCache) EnsurePopulated(ctx context.Context, dim, terms int, prec uint) error {
	if err := validateTableParams(dim, terms, prec); err != nil {
		return err
	}

	key := TableKey(dim, prec)
	doc, found, err := tc.loadForPopulate(ctx, key, dim, prec)
	if err != nil {
		return err
	}
	if !found {
		tc.log.Info("creating term table", Fields{"dim": dim, "prec": prec, "terms": terms})
		doc = TableDoc{Version: SchemaVersion, Dim: dim, Prec: prec, Terms: make(map[int]TermDoc, terms)}
	}

	missing := 0
	for k := 1; k <= terms; k++ {
		if _, ok := doc.Terms[k]; !ok {
			missing++
		}
	}
	if missing == 0 {
		tc.log.Debug("term table already populated", Fields{"dim": dim, "prec": prec, "terms": terms})
		return nil
	}
	tc.log.Info("extending term table", Fields{"dim": dim, "prec": prec, "have": len(doc.Terms), "missing": missing})

	for k := 1; k <= terms; k++ {
		if _, ok := doc.Terms[k]; ok {
			continue
		}
		doc.Terms[k] = encodeTerm(fresnelTerm(dim, k, prec))
	}

	payload, err := tc.codec.Encode(doc)
	if err != nil {
		return fmt.Errorf("fresnelvol: encode table: %w", err)
	}
	if err := tc.store.Set(ctx, key, wire.Encode(dim, prec, payload)); err != nil {
		return fmt.Errorf("fresnelvol: persist table %s: %w", key, err)
	}
	return nil
}

// Retrieve loads the table for (dim, prec) and validates that every series
// index in [1, terms] is present. It never writes: a missing table yields
// NotFoundError, a short one IncompleteError. Callers must treat the
// returned table as read-only.
func (tc *TermCache) Retrieve(ctx context.Context, dim, terms int, prec uint) (*TermTable, error) {
	if err := validateTableParams(dim, terms, prec); err != nil {
		return nil, err
	}

	key := TableKey(dim, prec)
	raw, ok, err := tc.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("fresnelvol: load table %s: %w", key, err)
	}
	if !ok {
		return nil, &NotFoundError{Dim: dim, Prec: prec}
	}

	doc, err := tc.decode(raw, dim, prec)
	if err != nil {
		return nil, err
	}

	if have := contiguousTerms(doc.Terms, terms); have < terms {
		return nil, &IncompleteError{Dim: dim, Prec: prec, Terms: terms, Have: have}
	}
	return tableFromDoc(doc)
}

// loadForPopulate is the tolerant read used by EnsurePopulated: an absent
// table is an empty start, and a corrupt one is discarded and rebuilt (every
// value is recomputable, so rebuilding is always safe).
func (tc *TermCache) loadForPopulate(ctx context.Context, key string, dim int, prec uint) (TableDoc, bool, error) {
	raw, ok, err := tc.store.Get(ctx, key)
	if err != nil {
		return TableDoc{}, false, fmt.Errorf("fresnelvol: load table %s: %w", key, err)
	}
	if !ok {
		return TableDoc{}, false, nil
	}
	doc, err := tc.decode(raw, dim, prec)
	if err != nil {
		tc.log.Warn("corrupt term table; rebuilding", Fields{"key": key, "err": err})
		return TableDoc{}, false, nil
	}
	return doc, true, nil
}

func (tc *TermCache) decode(raw []byte, dim int, prec uint) (TableDoc, error) {
	wdim, wprec, payload, err := wire.Decode(raw)
	if err != nil {
		return TableDoc{}, err
	}
	if wdim != dim || wprec != prec {
		return TableDoc{}, fmt.Errorf("%w: envelope is for dim %d prec %d", wire.ErrCorrupt, wdim, wprec)
	}
	doc, err := tc.codec.Decode(payload)
	if err != nil {
		return TableDoc{}, fmt.Errorf("%w: %v", wire.ErrCorrupt, err)
	}
	if doc.Version != SchemaVersion || doc.Dim != dim || doc.Prec != prec {
		return TableDoc{}, fmt.Errorf("%w: document identity v%d dim %d prec %d", wire.ErrCorrupt, doc.Version, doc.Dim, doc.Prec)
	}
	if doc.Terms == nil {
		doc.Terms = make(map[int]TermDoc)
	}
	return doc, nil
}

// ErrCorruptTable is returned (wrapped) when a stored table fails envelope or
// schema validation on the strict Retrieve path.
var ErrCorruptTable = wire.ErrCorrupt

func validateTableParams(dim, terms int, prec uint) error {
	if dim < 2 {
		return fmt.Errorf("fresnelvol: dimension must be >= 2, got %d", dim)
	}
	if terms < 1 {
		return fmt.Errorf("fresnelvol: terms must be >= 1, got %d", terms)
	}
	if prec == 0 {
		return &PrecisionError{Bits: prec}
	}
	return checkPrecision(prec)
}
