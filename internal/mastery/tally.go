package mastery

import "math"

// UnlockThreshold is the mastered fraction a region needs before the next
// region opens.
const UnlockThreshold = 0.75

// Status is a region's display status.
type Status string

const (
	StatusLocked   Status = "locked"
	StatusUnlocked Status = "unlocked"
	StatusMastered Status = "mastered"
)

// Tally counts mastered questions in a region.
type Tally struct {
	Mastered int
	Total    int
}

// Ratio returns Mastered/Total in [0, 1]. An empty region has ratio 0.
func (t Tally) Ratio() float64 {
	if t.Total <= 0 || t.Mastered <= 0 {
		return 0
	}
	r := float64(t.Mastered) / float64(t.Total)
	if r > 1 {
		return 1
	}
	return r
}

// MeetsThreshold reports whether the region has crossed UnlockThreshold.
func (t Tally) MeetsThreshold() bool {
	return t.Ratio() >= UnlockThreshold
}

// Percent returns the mastered fraction as a percentage rounded to one decimal.
func (t Tally) Percent() float64 {
	return RoundPercent(t.Ratio())
}

// RoundPercent converts a ratio to a percentage with one decimal place.
func RoundPercent(ratio float64) float64 {
	return math.Round(ratio*1000) / 10
}

// StatusFor returns the display status of a region. A region is mastered
// once Mastered >= Total*UnlockThreshold, so an unlocked empty region is
// mastered even though its Ratio is 0.
func StatusFor(unlocked bool, t Tally) Status {
	switch {
	case !unlocked:
		return StatusLocked
	case float64(t.Mastered) >= float64(t.Total)*UnlockThreshold:
		return StatusMastered
	default:
		return StatusUnlocked
	}
}
