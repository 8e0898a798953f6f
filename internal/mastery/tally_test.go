package mastery

import "testing"

func TestTallyRatio(t *testing.T) {
	tests := []struct {
		name  string
		tally Tally
		want  float64
	}{
		{"empty region", Tally{0, 0}, 0},
		{"none mastered", Tally{0, 4}, 0},
		{"three of four", Tally{3, 4}, 0.75},
		{"all", Tally{2, 2}, 1},
		{"clamped", Tally{5, 4}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tally.Ratio(); got != tt.want {
				t.Errorf("Ratio = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTallyPercent(t *testing.T) {
	tests := []struct {
		tally Tally
		want  float64
	}{
		{Tally{1, 3}, 33.3},
		{Tally{2, 3}, 66.7},
		{Tally{3, 4}, 75},
		{Tally{0, 0}, 0},
		{Tally{7, 7}, 100},
	}
	for _, tt := range tests {
		if got := tt.tally.Percent(); got != tt.want {
			t.Errorf("%+v.Percent() = %v, want %v", tt.tally, got, tt.want)
		}
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name     string
		unlocked bool
		tally    Tally
		want     Status
	}{
		{"locked even if mastered", false, Tally{4, 4}, StatusLocked},
		{"unlocked below threshold", true, Tally{2, 4}, StatusUnlocked},
		{"mastered at threshold", true, Tally{3, 4}, StatusMastered},
		{"just below threshold", true, Tally{5, 7}, StatusUnlocked},
		{"empty unlocked region is mastered", true, Tally{0, 0}, StatusMastered},
		{"empty locked region stays locked", false, Tally{0, 0}, StatusLocked},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusFor(tt.unlocked, tt.tally); got != tt.want {
				t.Errorf("StatusFor = %q, want %q", got, tt.want)
			}
		})
	}
}
