package fresnelvol

import (
	"bytes"
	"context"
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/ALTree/bigfloat"

	"github.com/unkn0wn-root/fresnelvol/internal/bigmath"
)

func newTestEstimator(t *testing.T, st *memStore) *Estimator {
	t.Helper()
	e, err := New(Options{Store: st, Precision: 212})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func absDiff(a, b *big.Float) *big.Float {
	d := new(big.Float).Sub(a, b)
	return d.Abs(d)
}

func wantClose(t *testing.T, got, want *big.Float, tol float64) {
	t.Helper()
	if d := absDiff(got, want); d.Cmp(big.NewFloat(tol)) > 0 {
		t.Fatalf("got %s, want %s (diff %s > %v)", got.Text('g', 20), want.Text('g', 20), d.Text('g', 5), tol)
	}
}

func TestEstimateBallShortcut(t *testing.T) {
	st := newMemStore()
	e := newTestEstimator(t, st)
	ctx := context.Background()

	for _, dim := range []int{2, 3, 10, 200} {
		for _, s := range []float64{0.25, 0.5, 1.0} {
			got, err := e.Estimate(ctx, dim, s)
			if err != nil {
				t.Fatalf("Estimate(%d, %v): %v", dim, s, err)
			}
			if got.Cmp(LogBallVolume(dim, 212)) != 0 {
				t.Fatalf("Estimate(%d, %v) != LogBallVolume", dim, s)
			}
		}
	}
	// the shortcut paths never touch the cache
	if len(st.m) != 0 {
		t.Fatalf("store written on shortcut path: %d keys", len(st.m))
	}
}

func TestEstimateBoxShortcut(t *testing.T) {
	e := newTestEstimator(t, newMemStore())
	ctx := context.Background()

	for _, tc := range []struct {
		dim int
		s   float64
	}{{2, 2.0}, {3, 3.0}, {5, 100.0}, {200, 1e6}} {
		got, err := e.Estimate(ctx, tc.dim, tc.s)
		if err != nil {
			t.Fatalf("Estimate(%d, %v): %v", tc.dim, tc.s, err)
		}
		// dim * (log 2 - log(s)/2), computed independently at higher precision
		want := bigfloat.Log(new(big.Float).SetPrec(300).SetFloat64(tc.s))
		want.SetMantExp(want, -1)
		want.Sub(bigfloat.Log(new(big.Float).SetPrec(300).SetInt64(2)), want)
		want.Mul(want, new(big.Float).SetPrec(300).SetInt64(int64(tc.dim)))
		wantClose(t, got, want, 1e-40)
	}
}

func TestEstimatePopulatesCache(t *testing.T) {
	st := newMemStore()
	e := newTestEstimator(t, st)
	ctx := context.Background()

	// the series path populates the table itself on first use
	first, err := e.EstimateWith(ctx, 3, 1.5, 200, 212)
	if err != nil {
		t.Fatalf("EstimateWith: %v", err)
	}
	if _, ok := st.m[TableKey(3, 212)]; !ok {
		t.Fatal("series path did not persist a term table")
	}

	// second call reuses the table and reproduces the value exactly
	stored := append([]byte(nil), st.m[TableKey(3, 212)]...)
	second, err := e.EstimateWith(ctx, 3, 1.5, 200, 212)
	if err != nil {
		t.Fatalf("EstimateWith repeat: %v", err)
	}
	if first.Cmp(second) != 0 {
		t.Fatal("repeat estimate differs")
	}
	if !bytes.Equal(stored, st.m[TableKey(3, 212)]) {
		t.Fatal("repeat estimate rewrote the stored table")
	}

	// and the table is reachable through the exposed cache
	table, err := e.Cache().Retrieve(ctx, 3, 200, 212)
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if table.Len() != 200 {
		t.Fatalf("got %d terms, want 200", table.Len())
	}
}

func TestEstimateInvalidParams(t *testing.T) {
	e := newTestEstimator(t, newMemStore())
	ctx := context.Background()

	for _, tc := range []struct {
		dim int
		s   float64
	}{{1, 1.5}, {0, 1.5}, {3, math.NaN()}, {3, math.Inf(1)}, {3, -2.0}, {3, 0}} {
		var re *RangeError
		if _, err := e.Estimate(ctx, tc.dim, tc.s); !errors.As(err, &re) {
			t.Errorf("Estimate(%d, %v): got %v, want RangeError", tc.dim, tc.s, err)
		}
	}

	var pe *PrecisionError
	if _, err := e.EstimateWith(ctx, 3, 1.5, 100, 0); !errors.As(err, &pe) {
		t.Errorf("zero precision: got %v, want PrecisionError", err)
	}
}

// Cross-check against the planar closed form: the disk of radius 1 minus the
// four circular segments cut off by the square of half-width h = 1/sqrt(s),
// area = pi - 4*(acos(h) - h*sqrt(1-h^2)), valid while the segments are
// disjoint (s <= 2).
func TestEstimateGoldenDim2(t *testing.T) {
	const (
		dim   = 2
		s     = 1.2
		terms = 4000
		prec  = 212
	)
	e := newTestEstimator(t, newMemStore())
	ctx := context.Background()

	got, err := e.EstimateWith(ctx, dim, s, terms, prec)
	if err != nil {
		t.Fatalf("EstimateWith: %v", err)
	}

	wp := uint(prec + 64)
	h := new(big.Float).SetPrec(wp).SetFloat64(s)
	h.Sqrt(h)
	h.Quo(new(big.Float).SetPrec(wp).SetInt64(1), h)

	seg := bigmath.Acos(h, wp)
	h2 := new(big.Float).SetPrec(wp).Mul(h, h)
	chord := new(big.Float).SetPrec(wp).Sub(new(big.Float).SetPrec(wp).SetInt64(1), h2)
	chord.Sqrt(chord)
	seg.Sub(seg, new(big.Float).SetPrec(wp).Mul(h, chord))

	vol := new(big.Float).SetPrec(wp).Set(bigmath.Pi(wp))
	seg.Mul(seg, new(big.Float).SetPrec(wp).SetInt64(4))
	vol.Sub(vol, seg)

	wantClose(t, got, bigfloat.Log(vol), 1e-5)
}

// Same cross-check in three dimensions: the unit ball minus the six
// spherical caps beyond the faces of the cube of half-width h,
// vol = 4*pi/3 - 6*pi*(2/3 - h + h^3/3), valid while caps are disjoint.
func TestEstimateGoldenDim3(t *testing.T) {
	const (
		dim   = 3
		s     = 1.5
		terms = 4000
		prec  = 212
	)
	e := newTestEstimator(t, newMemStore())
	ctx := context.Background()

	got, err := e.EstimateWith(ctx, dim, s, terms, prec)
	if err != nil {
		t.Fatalf("EstimateWith: %v", err)
	}

	wp := uint(prec + 64)
	h := new(big.Float).SetPrec(wp).SetFloat64(s)
	h.Sqrt(h)
	h.Quo(new(big.Float).SetPrec(wp).SetInt64(1), h)

	h3 := new(big.Float).SetPrec(wp).Mul(h, h)
	h3.Mul(h3, h)
	capVol := new(big.Float).SetPrec(wp).Quo(
		new(big.Float).SetPrec(wp).SetInt64(2),
		new(big.Float).SetPrec(wp).SetInt64(3))
	capVol.Sub(capVol, h)
	capVol.Add(capVol, new(big.Float).SetPrec(wp).Quo(h3, new(big.Float).SetPrec(wp).SetInt64(3)))
	capVol.Mul(capVol, bigmath.Pi(wp))

	vol := new(big.Float).SetPrec(wp).Quo(
		new(big.Float).SetPrec(wp).SetInt64(4),
		new(big.Float).SetPrec(wp).SetInt64(3))
	vol.Mul(vol, bigmath.Pi(wp))
	vol.Sub(vol, new(big.Float).SetPrec(wp).Mul(capVol, new(big.Float).SetPrec(wp).SetInt64(6)))

	wantClose(t, got, bigfloat.Log(vol), 1e-5)
}

// At dim=4, s=2 every even k makes k*s/dim an exact integer, exercising the
// real-factor resonance branch throughout the sum.
func TestEstimateResonance(t *testing.T) {
	const (
		dim   = 4
		s     = 2.0
		terms = 2000
		prec  = 212
	)
	e := newTestEstimator(t, newMemStore())
	ctx := context.Background()

	got, err := e.EstimateWith(ctx, dim, s, terms, prec)
	if err != nil {
		t.Fatalf("EstimateWith: %v", err)
	}

	ball := LogBallVolume(dim, prec)
	box := logBoxVolume(dim, s, prec)
	if got.Cmp(ball) >= 0 || got.Cmp(box) >= 0 {
		t.Fatalf("estimate %s not below ball %s and box %s", got.Text('g', 10), ball.Text('g', 10), box.Text('g', 10))
	}

	// the intersection contains the ball inscribed in the box (radius 1/sqrt(2)),
	// so the estimate cannot fall below that ball's log-volume
	wp := uint(prec + 32)
	inscribed := new(big.Float).SetPrec(wp).SetInt64(2)
	inscribed.Sqrt(inscribed)
	inscribed.Quo(new(big.Float).SetPrec(wp).SetInt64(1), inscribed)
	lower := LogBallVolumeR(dim, inscribed, prec)
	if got.Cmp(lower) <= 0 {
		t.Fatalf("estimate %s below inscribed-ball bound %s", got.Text('g', 10), lower.Text('g', 10))
	}
}

// High-dimensional scenario: at dim=200, s=1.1 the true value sits strictly
// between the full-cube log-volume and the full-ball log-volume, and
// resolving it takes the whole default precision (the series cancels to a
// value near e^-378).
func TestEstimateHighDimension(t *testing.T) {
	if testing.Short() {
		t.Skip("populates 1500 terms at dimension 200")
	}
	const (
		dim   = 200
		s     = 1.1
		terms = 1500
		prec  = DefaultPrecision
	)
	e, err := New(Options{Store: newMemStore(), Precision: prec})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()

	got, err := e.EstimateWith(ctx, dim, s, terms, prec)
	if err != nil {
		t.Fatalf("EstimateWith: %v", err)
	}
	if got.IsInf() {
		t.Fatal("estimate is infinite")
	}

	ball := LogBallVolume(dim, prec)
	box := logBoxVolume(dim, s, prec)
	if got.Cmp(ball) >= 0 {
		t.Fatalf("estimate %s not below ball volume %s", got.Text('g', 10), ball.Text('g', 10))
	}
	if got.Cmp(box) >= 0 {
		t.Fatalf("estimate %s not below box volume %s", got.Text('g', 10), box.Text('g', 10))
	}
	// nearly all of the ball lies inside the box here, so the estimate must
	// sit just under the ball volume rather than far below it
	margin := new(big.Float).Sub(ball, got)
	if margin.Cmp(big.NewFloat(1)) > 0 {
		t.Fatalf("estimate %s too far below ball volume %s", got.Text('g', 10), ball.Text('g', 10))
	}
}

func TestAsymptoticMatchesBoxLimit(t *testing.T) {
	// for s far above dim the correction probability tends to 1 and the
	// asymptotic estimate collapses to the box volume
	got, err := AsymptoticEstimate(2, 100, 212)
	if err != nil {
		t.Fatalf("AsymptoticEstimate: %v", err)
	}
	wantClose(t, got, logBoxVolume(2, 100, 212), 1e-5)
}

func TestAsymptoticDomain(t *testing.T) {
	var re *RangeError
	if _, err := AsymptoticEstimate(6, 1.5, 212); !errors.As(err, &re) {
		t.Fatalf("got %v, want RangeError", err)
	}
	if _, err := AsymptoticEstimate(6, 2.0, 212); !errors.As(err, &re) {
		t.Fatalf("s == dim/3: got %v, want RangeError", err)
	}
	if _, err := AsymptoticEstimate(2, math.NaN(), 212); !errors.As(err, &re) {
		t.Fatalf("NaN: got %v, want RangeError", err)
	}
}

func TestLogBallVolumeKnownValues(t *testing.T) {
	// vol(B_2) = pi, vol(B_3) = 4*pi/3
	wp := uint(300)
	wantClose(t, LogBallVolume(2, 212), bigfloat.Log(bigmath.Pi(wp)), 1e-40)

	v3 := new(big.Float).SetPrec(wp).Quo(
		new(big.Float).SetPrec(wp).SetInt64(4),
		new(big.Float).SetPrec(wp).SetInt64(3))
	v3.Mul(v3, bigmath.Pi(wp))
	wantClose(t, LogBallVolume(3, 212), bigfloat.Log(v3), 1e-40)

	// radius scaling: log vol(B_3(2)) = log vol(B_3) + 3*log 2
	r := new(big.Float).SetPrec(wp).SetInt64(2)
	want := new(big.Float).SetPrec(wp).Add(bigfloat.Log(v3),
		new(big.Float).SetPrec(wp).Mul(
			new(big.Float).SetPrec(wp).SetInt64(3),
			bigfloat.Log(new(big.Float).SetPrec(wp).SetInt64(2))))
	wantClose(t, LogBallVolumeR(3, r, 212), want, 1e-40)
}
