package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveTriggerInsights(t *testing.T) {
	all := map[string]int{"noise": 5, "stress": 2}
	slips := map[string]int{"noise": 2, "boredom": 3}

	insights := DeriveTriggerInsights(all, slips)

	require.Len(t, insights, 3)

	// Ordered by total desc, slipped desc, label asc.
	assert.Equal(t, TriggerInsight{Trigger: "noise", Total: 5, Slipped: 2, Resisted: 3}, insights[0])
	assert.Equal(t, TriggerInsight{Trigger: "boredom", Total: 3, Slipped: 3, Resisted: 0}, insights[1])
	assert.Equal(t, TriggerInsight{Trigger: "stress", Total: 2, Slipped: 0, Resisted: 2}, insights[2])

	assert.InDelta(t, 0.4, insights[0].SlipRate(), 1e-9)
	assert.InDelta(t, 1.0, insights[1].SlipRate(), 1e-9)
}

func TestDeriveTriggerInsights_SlipOnlyTrigger(t *testing.T) {
	// Triggers logged only via slip events use the slip count as total.
	insights := DeriveTriggerInsights(nil, map[string]int{"boredom": 3})

	require.Len(t, insights, 1)
	assert.Equal(t, TriggerInsight{Trigger: "boredom", Total: 3, Slipped: 3, Resisted: 0}, insights[0])
}

func TestDeriveTriggerInsights_SlipCappedAtTotal(t *testing.T) {
	insights := DeriveTriggerInsights(map[string]int{"noise": 2}, map[string]int{"noise": 5})

	require.Len(t, insights, 1)
	assert.Equal(t, 2, insights[0].Total)
	assert.Equal(t, 2, insights[0].Slipped)
	assert.Equal(t, 0, insights[0].Resisted)
}

func TestDeriveTriggerInsights_Empty(t *testing.T) {
	assert.Empty(t, DeriveTriggerInsights(nil, nil))
	assert.Empty(t, DeriveTriggerInsights(map[string]int{"noise": 0}, nil))
}

func TestHighestRiskTrigger(t *testing.T) {
	// B has the higher raw slip rate but is excluded by the total >= 2 floor.
	insights := []TriggerInsight{
		{Trigger: "A", Total: 10, Slipped: 8, Resisted: 2},
		{Trigger: "B", Total: 1, Slipped: 1, Resisted: 0},
	}

	top, ok := HighestRiskTrigger(insights)

	require.True(t, ok)
	assert.Equal(t, "A", top.Trigger)
}

func TestHighestRiskTrigger_FallbackBelowFloor(t *testing.T) {
	insights := []TriggerInsight{
		{Trigger: "B", Total: 1, Slipped: 1, Resisted: 0},
	}

	top, ok := HighestRiskTrigger(insights)

	require.True(t, ok)
	assert.Equal(t, "B", top.Trigger)
}

func TestHighestRiskTrigger_TieBreaks(t *testing.T) {
	// Equal slip rates: the higher total wins.
	insights := []TriggerInsight{
		{Trigger: "A", Total: 2, Slipped: 1, Resisted: 1},
		{Trigger: "B", Total: 4, Slipped: 2, Resisted: 2},
	}

	top, ok := HighestRiskTrigger(insights)

	require.True(t, ok)
	assert.Equal(t, "B", top.Trigger)
}

func TestHighestRiskTrigger_Empty(t *testing.T) {
	_, ok := HighestRiskTrigger(nil)
	assert.False(t, ok)
}

func TestStrongestResistedTrigger(t *testing.T) {
	insights := []TriggerInsight{
		{Trigger: "A", Total: 6, Slipped: 5, Resisted: 1},
		{Trigger: "B", Total: 4, Slipped: 0, Resisted: 4},
		{Trigger: "C", Total: 5, Slipped: 1, Resisted: 4},
	}

	top, ok := StrongestResistedTrigger(insights)

	require.True(t, ok)
	// B and C tie on resisted; C has the higher total.
	assert.Equal(t, "C", top.Trigger)
}

func TestStrongestResistedTrigger_NoneResisted(t *testing.T) {
	insights := []TriggerInsight{
		{Trigger: "A", Total: 3, Slipped: 3, Resisted: 0},
	}

	_, ok := StrongestResistedTrigger(insights)
	assert.False(t, ok)
}

func TestControlScore(t *testing.T) {
	insights := []TriggerInsight{
		{Trigger: "A", Total: 4, Slipped: 1, Resisted: 3},
		{Trigger: "B", Total: 2, Slipped: 2, Resisted: 0},
	}

	assert.InDelta(t, 0.5, ControlScore(insights, 0.9), 1e-9)
	assert.InDelta(t, 0.9, ControlScore(nil, 0.9), 1e-9)
}
