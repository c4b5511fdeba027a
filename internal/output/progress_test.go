package output

import (
	"strings"
	"testing"
)

func TestIntensityBar(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	got := IntensityBar(6, 10)
	if !strings.HasPrefix(got, "██████░░░░") {
		t.Errorf("unexpected bar %q", got)
	}
	if !strings.HasSuffix(got, "6/10") {
		t.Errorf("expected 6/10 suffix, got %q", got)
	}
	if got := IntensityBar(14, 10); strings.Contains(got, "░") {
		t.Errorf("expected full bar for out-of-range intensity, got %q", got)
	}
}

func TestCorrelationBar(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	pos := CorrelationBar(0.5, 4)
	if !strings.Contains(pos, "▕██") || !strings.HasSuffix(pos, "+0.50") {
		t.Errorf("unexpected positive bar %q", pos)
	}

	neg := CorrelationBar(-1, 4)
	if !strings.HasPrefix(neg, "████▕") || !strings.HasSuffix(neg, "-1.00") {
		t.Errorf("unexpected negative bar %q", neg)
	}

	if visualLen(CorrelationBar(0.9, 4)) != visualLen(CorrelationBar(-0.1, 4)) {
		t.Error("expected constant bar width")
	}
}

func TestStrength(t *testing.T) {
	tests := []struct {
		r    float64
		want string
	}{
		{0.85, "strong"},
		{-0.75, "strong"},
		{0.45, "moderate"},
		{-0.25, "weak"},
		{0.05, "none"},
	}
	for _, tc := range tests {
		if got := Strength(tc.r); got != tc.want {
			t.Errorf("Strength(%v) = %q, want %q", tc.r, got, tc.want)
		}
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(0.167); got != "17%" {
		t.Errorf("expected 17%%, got %q", got)
	}
}
