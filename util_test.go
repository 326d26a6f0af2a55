package supershape

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// approx compares floats with an absolute tolerance.
func approx(epsilon float64) cmp.Option {
	return cmpopts.EquateApprox(0, epsilon)
}

func assertNear(t *testing.T, got, want Vec3, epsilon float64) {
	t.Helper()
	if d := got.Distance(want); d > epsilon {
		t.Fatalf("got %s, expected %s", got, want)
	}
}

var unit = Params{M: 4, A: 1, B: 1, N1: 1, N2: 1, N3: 1}

func mustBuild(t testing.TB, long, lat Params, res Resolution, scale Vec3) Mesh {
	t.Helper()
	m, err := Build(long, lat, res, scale)
	if err != nil {
		t.Fatal(err)
	}
	return m
}
