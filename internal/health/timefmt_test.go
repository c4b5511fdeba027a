package health

import (
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"2026-03-04T08:15:00", false},
		{"2026-03-04T08:15:00.123456", false},
		{" 2026-03-04T08:15:00 ", false},
		{"2026-03-04", true},
		{"2026-03-04T08:15:00+02:00", true},
		{"04/03/2026 08:15", true},
		{"", true},
	}
	for _, tc := range tests {
		_, err := ParseTimestamp(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseTimestamp(%q) err = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
	}
}

func TestNaive_KeepsWallClock(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	in := time.Date(2026, 3, 4, 23, 30, 0, 0, loc)
	got := Naive(in)
	if got.Hour() != 23 || got.Day() != 4 {
		t.Errorf("Naive changed wall clock: %v", got)
	}
	if got.Location() != time.UTC {
		t.Errorf("expected UTC location, got %v", got.Location())
	}
}

func TestCutoff(t *testing.T) {
	now := time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)
	got := Cutoff(now, 30)
	want := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Cutoff = %v, want %v", got, want)
	}
}

func TestClampScore(t *testing.T) {
	for in, want := range map[int]int{-3: 0, 0: 0, 7: 7, 10: 10, 14: 10} {
		if got := ClampScore(in); got != want {
			t.Errorf("ClampScore(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestPrimaryTrigger(t *testing.T) {
	r := PainRecord{PhysicalTrigger: "posture", MentalTrigger: "stress"}
	if r.PrimaryTrigger() != "posture" {
		t.Errorf("expected physical trigger first, got %q", r.PrimaryTrigger())
	}
	r.PhysicalTrigger = ""
	if r.PrimaryTrigger() != "stress" {
		t.Errorf("expected mental fallback, got %q", r.PrimaryTrigger())
	}
}
