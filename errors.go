package fresnelvol

import "fmt"

// PrecisionError reports an unusable precision configuration.
// It is never retried internally.
type PrecisionError struct {
	Bits uint
}

func (e *PrecisionError) Error() string {
	return fmt.Sprintf("fresnelvol: invalid precision %d bits", e.Bits)
}

// NotFoundError reports that no term table exists for a (dimension,
// precision) pair. Retrieve never writes; EnsurePopulated must run first.
// Through the estimator this only surfaces when the store loses the table
// between the populate and retrieve steps (e.g. an ephemeral store under
// memory pressure).
type NotFoundError struct {
	Dim  int
	Prec uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("fresnelvol: no term table for dimension %d at %d bits; run EnsurePopulated first", e.Dim, e.Prec)
}

// IncompleteError reports a table that exists but lacks required term
// indices. Handled like NotFoundError: populate with more terms and retry.
type IncompleteError struct {
	Dim   int
	Prec  uint
	Terms int // requested
	Have  int // contiguous terms present from 1
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("fresnelvol: term table for dimension %d at %d bits holds %d of %d required terms",
		e.Dim, e.Prec, e.Have, e.Terms)
}

// InstabilityError reports that the truncated series summed to a non-positive
// value, i.e. the requested (terms, precision) budget cannot resolve the
// volume for this (dimension, scaling). The result is never clamped; retry
// with more terms and/or precision.
type InstabilityError struct {
	Dim   int
	S     float64
	Terms int
	Prec  uint
}

func (e *InstabilityError) Error() string {
	return fmt.Sprintf("fresnelvol: series non-positive for dimension %d, scaling %v (terms=%d, prec=%d); increase terms or precision",
		e.Dim, e.S, e.Terms, e.Prec)
}

// RangeError reports a call outside an estimator's valid parameter region
// (e.g. the asymptotic estimate with s <= dim/3).
type RangeError struct {
	Dim int
	S   float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("fresnelvol: parameters out of range: dimension %d, scaling %v", e.Dim, e.S)
}
