package analyzer

import (
	"math"
	"testing"
)

func TestPearson_PerfectPositive(t *testing.T) {
	r := Pearson([]float64{1, 2, 3, 4, 5}, []float64{2, 4, 6, 8, 10})
	if math.Abs(r-1.0) > 0.01 {
		t.Errorf("expected 1.0, got %f", r)
	}
}

func TestPearson_PerfectNegative(t *testing.T) {
	r := Pearson([]float64{1, 2, 3, 4, 5}, []float64{10, 8, 6, 4, 2})
	if math.Abs(r+1.0) > 0.01 {
		t.Errorf("expected -1.0, got %f", r)
	}
}

func TestPearson_ConstantSeries(t *testing.T) {
	if r := Pearson([]float64{3, 3, 3, 3}, []float64{1, 2, 3, 4}); r != 0 {
		t.Errorf("constant x: expected exactly 0, got %f", r)
	}
	if r := Pearson([]float64{1, 2, 3, 4}, []float64{7, 7, 7, 7}); r != 0 {
		t.Errorf("constant y: expected exactly 0, got %f", r)
	}
}

func TestPearson_DegenerateInput(t *testing.T) {
	if r := Pearson([]float64{1, 2, 3}, []float64{1, 2}); r != 0 {
		t.Errorf("mismatched lengths: expected 0, got %f", r)
	}
	if r := Pearson([]float64{1}, []float64{1}); r != 0 {
		t.Errorf("single value: expected 0, got %f", r)
	}
	if r := Pearson(nil, nil); r != 0 {
		t.Errorf("nil: expected 0, got %f", r)
	}
}

func TestPearson_Bounded(t *testing.T) {
	x := []float64{0.1, 0.2, 0.30000000000000004, 0.4}
	y := []float64{1e-9, 2e-9, 3e-9, 4e-9}
	r := Pearson(x, y)
	if r > 1 || r < -1 {
		t.Errorf("expected r within [-1,1], got %v", r)
	}
}

func TestDataConfidence_MonotonicAndCapped(t *testing.T) {
	prev := 0.0
	for n := 0; n <= 60; n++ {
		c := DataConfidence(n)
		if c < prev {
			t.Fatalf("confidence decreased at %d: %f < %f", n, c, prev)
		}
		if c > 1.0 {
			t.Fatalf("confidence above 1 at %d: %f", n, c)
		}
		prev = c
	}
	if DataConfidence(30) != 1.0 {
		t.Errorf("expected 1.0 at 30 points, got %f", DataConfidence(30))
	}
	if DataConfidence(-4) != 0 {
		t.Errorf("expected 0 for negative points")
	}
}

func TestRound3(t *testing.T) {
	if got := round3(0.16666); got != 0.167 {
		t.Errorf("expected 0.167, got %v", got)
	}
	if got := round3(-0.0001); math.Signbit(got) {
		t.Errorf("expected positive zero, got %v", got)
	}
}
