package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluateCounterAcceptsAdvancingCounter(t *testing.T) {
	decision := EvaluateCounter(5, 6)
	require.True(t, decision.Accept)
	require.False(t, decision.CloneDetected)
}

func TestEvaluateCounterAcceptsZeroZeroAsNonCountingAuthenticator(t *testing.T) {
	decision := EvaluateCounter(0, 0)
	require.True(t, decision.Accept)
	require.False(t, decision.CloneDetected)
}

func TestEvaluateCounterRejectsStaleCounter(t *testing.T) {
	decision := EvaluateCounter(10, 10)
	require.False(t, decision.Accept)
	require.True(t, decision.CloneDetected)
}

func TestEvaluateCounterRejectsRegressingCounter(t *testing.T) {
	decision := EvaluateCounter(10, 3)
	require.False(t, decision.Accept)
	require.True(t, decision.CloneDetected)
}

func TestEvaluateCounterRejectsDroppingToZeroAfterNonzero(t *testing.T) {
	decision := EvaluateCounter(5, 0)
	require.False(t, decision.Accept)
	require.True(t, decision.CloneDetected)
}
