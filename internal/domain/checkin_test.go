package domain

import (
	"testing"
	"time"
)

func TestWeekOfMonth(t *testing.T) {
	tests := []struct {
		day  int
		want int
	}{
		{1, 1},
		{7, 1},
		{8, 2},
		{14, 2},
		{15, 3},
		{21, 3},
		{22, 4},
		{28, 4},
		{29, 5},
		{31, 5},
	}

	for _, tt := range tests {
		date := time.Date(2026, time.January, tt.day, 12, 0, 0, 0, time.UTC)
		if got := WeekOfMonth(date); got != tt.want {
			t.Errorf("WeekOfMonth(day %d) = %d, want %d", tt.day, got, tt.want)
		}
	}
}

// The bucketing ignores weekdays entirely: the same day-of-month maps
// to the same week in every month.
func TestWeekOfMonth_IgnoresWeekday(t *testing.T) {
	for month := time.January; month <= time.December; month++ {
		date := time.Date(2026, month, 10, 0, 0, 0, 0, time.UTC)
		if got := WeekOfMonth(date); got != 2 {
			t.Errorf("WeekOfMonth(%s 10) = %d, want 2", month, got)
		}
	}
}

func TestValidFeeling(t *testing.T) {
	for _, f := range []Feeling{FeelingExhausted, FeelingTired, FeelingGood, FeelingStrong, FeelingOnFire} {
		if !ValidFeeling(f) {
			t.Errorf("expected %q to be valid", f)
		}
	}
	for _, f := range []Feeling{"", "great", "GOOD"} {
		if ValidFeeling(f) {
			t.Errorf("expected %q to be invalid", f)
		}
	}
}

func TestValidEnergyLevel(t *testing.T) {
	for _, e := range []EnergyLevel{EnergyMuchLower, EnergyLower, EnergySame, EnergyHigher, EnergyMuchHigher} {
		if !ValidEnergyLevel(e) {
			t.Errorf("expected %q to be valid", e)
		}
	}
	for _, e := range []EnergyLevel{"", "medium", "Same"} {
		if ValidEnergyLevel(e) {
			t.Errorf("expected %q to be invalid", e)
		}
	}
}
