package spacedrep

import "fmt"

// MasteryPolicy decides when a correctly answered question counts as
// mastered. A question is mastered once a correct answer moves its interval
// to at least MinIntervalDays.
type MasteryPolicy struct {
	Name            string
	MinIntervalDays int
}

var (
	// FirstCorrectPass masters a question on its first correct answer.
	FirstCorrectPass = MasteryPolicy{Name: "first-pass", MinIntervalDays: FirstIntervalDays}

	// SustainedRecall masters a question only after its interval reaches
	// three weeks of successful reviews.
	SustainedRecall = MasteryPolicy{Name: "interval-21", MinIntervalDays: 21}
)

// DefaultPolicy is the policy used when none is configured.
var DefaultPolicy = FirstCorrectPass

// Reached reports whether a correct answer that produced newInterval
// satisfies the policy.
func (p MasteryPolicy) Reached(newInterval int) bool {
	return newInterval >= p.MinIntervalDays
}

func (p MasteryPolicy) String() string {
	return p.Name
}

// ParsePolicy resolves a policy by name. The empty string selects DefaultPolicy.
func ParsePolicy(name string) (MasteryPolicy, error) {
	switch name {
	case "":
		return DefaultPolicy, nil
	case FirstCorrectPass.Name:
		return FirstCorrectPass, nil
	case SustainedRecall.Name:
		return SustainedRecall, nil
	default:
		return MasteryPolicy{}, fmt.Errorf("unknown mastery policy %q (want %q or %q)",
			name, FirstCorrectPass.Name, SustainedRecall.Name)
	}
}
