package engine

// CounterDecision is the outcome of applying spec.md §4.5.4 step 5's
// signature-counter policy to a login attempt.
type CounterDecision struct {
	Accept        bool
	CloneDetected bool
}

// EvaluateCounter applies the counter policy and the Open Question (c)
// resolution: an authenticator that persistently reports 0 is treated
// as non-counter-capable rather than cloned.
func EvaluateCounter(old, reported uint32) CounterDecision {
	if old == 0 && reported == 0 {
		return CounterDecision{Accept: true}
	}
	if reported > old {
		return CounterDecision{Accept: true}
	}
	return CounterDecision{Accept: false, CloneDetected: true}
}
