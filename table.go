package fresnelvol

import (
	"fmt"
	"math/big"

	"github.com/unkn0wn-root/fresnelvol/internal/bigmath"
)

// SchemaVersion tags the persisted table schema. Bump on incompatible
// changes; Retrieve rejects documents written under a different version.
const SchemaVersion = 1

// TermDoc is one persisted term value. Parts are hexadecimal floating-point
// strings (big.Float.Text('p', 0)): exact at the stored precision, portable,
// and independent of any Go-specific binary encoding.
type TermDoc struct {
	R string `cbor:"r" json:"r" msgpack:"r"`
	I string `cbor:"i" json:"i" msgpack:"i"`
}

// TableDoc is the persisted schema for one (dimension, precision) table:
// a mapping from series index k >= 1 to the precomputed k-th term.
type TableDoc struct {
	Version int             `cbor:"v" json:"v" msgpack:"v"`
	Dim     int             `cbor:"d" json:"d" msgpack:"d"`
	Prec    uint            `cbor:"p" json:"p" msgpack:"p"`
	Terms   map[int]TermDoc `cbor:"t" json:"t" msgpack:"t"`
}

// TermTable is a decoded, validated table. It is handed out by Retrieve as a
// read-only view; callers must not mutate the returned values.
type TermTable struct {
	dim   int
	prec  uint
	terms map[int]*bigmath.Complex
}

func (t *TermTable) Dim() int   { return t.dim }
func (t *TermTable) Prec() uint { return t.prec }
func (t *TermTable) Len() int   { return len(t.terms) }

// Term returns the precomputed value for series index k.
func (t *TermTable) Term(k int) (*bigmath.Complex, bool) {
	v, ok := t.terms[k]
	return v, ok
}

func encodeTerm(v *bigmath.Complex) TermDoc {
	return TermDoc{
		R: v.Re.Text('p', 0),
		I: v.Im.Text('p', 0),
	}
}

func decodeTerm(d TermDoc, prec uint) (*bigmath.Complex, error) {
	re, _, err := new(big.Float).SetPrec(prec).Parse(d.R, 0)
	if err != nil {
		return nil, fmt.Errorf("fresnelvol: bad term real part %q: %w", d.R, err)
	}
	im, _, err := new(big.Float).SetPrec(prec).Parse(d.I, 0)
	if err != nil {
		return nil, fmt.Errorf("fresnelvol: bad term imaginary part %q: %w", d.I, err)
	}
	return &bigmath.Complex{Re: re, Im: im}, nil
}

func tableFromDoc(doc TableDoc) (*TermTable, error) {
	terms := make(map[int]*bigmath.Complex, len(doc.Terms))
	for k, d := range doc.Terms {
		v, err := decodeTerm(d, doc.Prec)
		if err != nil {
			return nil, err
		}
		terms[k] = v
	}
	return &TermTable{dim: doc.Dim, prec: doc.Prec, terms: terms}, nil
}

// contiguousTerms reports how many indices of [1, terms] are present as a
// contiguous run from 1, i.e. the largest t <= terms with keys 1..t all set.
func contiguousTerms(m map[int]TermDoc, terms int) int {
	n := 0
	for k := 1; k <= terms; k++ {
		if _, ok := m[k]; !ok {
			break
		}
		n++
	}
	return n
}
