package agent_test

import (
	"testing"

	"github.com/kestrel-robotics/warehouse-core/internal/domain/agent"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/grid"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsNegativeCapacity(t *testing.T) {
	_, err := agent.New(1, grid.Position{Row: 0, Col: 0}, shared.Up, -1)
	require.Error(t, err)
}

func TestAgentLifecycle_ReadyActiveBlockedActive(t *testing.T) {
	a, err := agent.New(1, grid.Position{Row: 0, Col: 0}, shared.Up, 10)
	require.NoError(t, err)
	assert.Equal(t, agent.Ready, a.Status())

	require.NoError(t, a.AssignTask(7))
	assert.Equal(t, agent.Active, a.Status())
	taskID, ok := a.ActiveTask()
	assert.True(t, ok)
	assert.Equal(t, 7, taskID)

	require.NoError(t, a.Block())
	assert.Equal(t, agent.Blocked, a.Status())

	require.NoError(t, a.Unblock())
	assert.Equal(t, agent.Active, a.Status())

	a.CompleteTask()
	assert.Equal(t, agent.Ready, a.Status())
	_, ok = a.ActiveTask()
	assert.False(t, ok)
}

func TestAgentDeactivate_DropsPlanFromAnyStatus(t *testing.T) {
	a, err := agent.New(1, grid.Position{Row: 0, Col: 0}, shared.Up, 10)
	require.NoError(t, err)
	a.SetPlan([]agent.Action{{Kind: agent.Move, Dir: shared.Up}})
	require.NoError(t, a.AssignTask(1))

	a.Deactivate()
	assert.Equal(t, agent.Deactivated, a.Status())
	assert.False(t, a.HasPlan())
}

func TestAgentPlan_ConsumeInOrder(t *testing.T) {
	a, err := agent.New(1, grid.Position{Row: 0, Col: 0}, shared.Up, 10)
	require.NoError(t, err)
	a.SetPlan([]agent.Action{
		{Kind: agent.Move, Dir: shared.Up},
		{Kind: agent.RotateRight},
	})
	first, ok := a.NextAction()
	require.True(t, ok)
	assert.Equal(t, agent.Move, first.Kind)

	a.ConsumeAction()
	second, ok := a.NextAction()
	require.True(t, ok)
	assert.Equal(t, agent.RotateRight, second.Kind)

	a.ConsumeAction()
	_, ok = a.NextAction()
	assert.False(t, ok)
}

func TestAgentCarrying_PickUpAndDrop(t *testing.T) {
	a, err := agent.New(1, grid.Position{Row: 0, Col: 0}, shared.Up, 10)
	require.NoError(t, err)
	_, ok := a.IsCarrying()
	assert.False(t, ok)

	a.PickUp(42)
	rackID, ok := a.IsCarrying()
	require.True(t, ok)
	assert.Equal(t, 42, rackID)

	a.Drop()
	_, ok = a.IsCarrying()
	assert.False(t, ok)
}

func TestAgentTouch_OncePerTick(t *testing.T) {
	a, err := agent.New(1, grid.Position{Row: 0, Col: 0}, shared.Up, 10)
	require.NoError(t, err)
	assert.False(t, a.TouchedAt(5))
	a.Touch(5)
	assert.True(t, a.TouchedAt(5))
	assert.False(t, a.TouchedAt(6))
}

func TestAgentPriority_IsID(t *testing.T) {
	a, err := agent.New(3, grid.Position{Row: 0, Col: 0}, shared.Up, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, a.Priority())
}
