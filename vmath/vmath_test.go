package vmath

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

const tol = 1e-9

func TestLerpEndpoints(t *testing.T) {
	a := r3.Vec{X: 1, Y: 2, Z: 3}
	b := r3.Vec{X: -3, Y: 4, Z: 9}

	if got := Lerp(a, b, 0); Dist(got, a) > tol {
		t.Errorf("Lerp(a,b,0) = %v, want %v", got, a)
	}
	if got := Lerp(a, b, 1); Dist(got, b) > tol {
		t.Errorf("Lerp(a,b,1) = %v, want %v", got, b)
	}
	mid := r3.Vec{X: -1, Y: 3, Z: 6}
	if got := Lerp(a, b, 0.5); Dist(got, mid) > tol {
		t.Errorf("Lerp(a,b,0.5) = %v, want %v", got, mid)
	}
}

func TestEaseInOutCubic(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{-1, 0},
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{2, 1},
	}
	for _, c := range cases {
		if got := EaseInOutCubic(c.in); math.Abs(got-c.want) > tol {
			t.Errorf("EaseInOutCubic(%v) = %v, want %v", c.in, got, c.want)
		}
	}

	// Monotonic over [0,1]
	prev := 0.0
	for i := 1; i <= 100; i++ {
		v := EaseInOutCubic(float64(i) / 100)
		if v < prev {
			t.Fatalf("easing not monotonic at t=%v: %v < %v", float64(i)/100, v, prev)
		}
		prev = v
	}

	// Slower than linear near the start, faster past the midpoint
	if EaseInOutCubic(0.1) >= 0.1 {
		t.Error("expected slow start")
	}
	if EaseInOutCubic(0.9) <= 0.9 {
		t.Error("expected slow finish approached from above")
	}
}

func TestCentroid(t *testing.T) {
	pts := []r3.Vec{
		{X: 0, Y: 0, Z: 0},
		{X: 2, Y: 4, Z: 6},
		{X: 4, Y: 2, Z: 0},
	}
	want := r3.Vec{X: 2, Y: 2, Z: 2}
	if got := Centroid(pts); Dist(got, want) > tol {
		t.Errorf("Centroid = %v, want %v", got, want)
	}
	if got := Centroid(nil); got != (r3.Vec{}) {
		t.Errorf("Centroid(nil) = %v, want zero", got)
	}
}

func TestMaxDistFrom(t *testing.T) {
	origin := r3.Vec{X: 1, Y: 1, Z: 1}
	pts := []r3.Vec{
		{X: 1, Y: 1, Z: 1},
		{X: 1, Y: 1, Z: 4},
		{X: 2, Y: 1, Z: 1},
	}
	if got := MaxDistFrom(origin, pts); math.Abs(got-3) > tol {
		t.Errorf("MaxDistFrom = %v, want 3", got)
	}
	if got := MaxDistFrom(origin, nil); got != 0 {
		t.Errorf("MaxDistFrom(nil) = %v, want 0", got)
	}
}

func TestBoundsOf(t *testing.T) {
	pts := []r3.Vec{
		{X: -1, Y: 5, Z: 2},
		{X: 3, Y: -2, Z: 0},
		{X: 0, Y: 0, Z: 7},
	}
	b, ok := BoundsOf(pts)
	if !ok {
		t.Fatal("BoundsOf returned !ok for non-empty slice")
	}
	wantMin := r3.Vec{X: -1, Y: -2, Z: 0}
	wantMax := r3.Vec{X: 3, Y: 5, Z: 7}
	if Dist(b.Min, wantMin) > tol || Dist(b.Max, wantMax) > tol {
		t.Errorf("BoundsOf = %+v, want min %v max %v", b, wantMin, wantMax)
	}

	c := b.Center()
	wantCenter := r3.Vec{X: 1, Y: 1.5, Z: 3.5}
	if Dist(c, wantCenter) > tol {
		t.Errorf("Center = %v, want %v", c, wantCenter)
	}

	if _, ok := BoundsOf(nil); ok {
		t.Error("BoundsOf(nil) reported ok")
	}
}

func TestValid(t *testing.T) {
	if !Valid(r3.Vec{X: 1, Y: 2, Z: 3}) {
		t.Error("finite vector reported invalid")
	}
	if Valid(r3.Vec{X: math.NaN()}) {
		t.Error("NaN vector reported valid")
	}
	if Valid(r3.Vec{Z: math.Inf(1)}) {
		t.Error("Inf vector reported valid")
	}
}
