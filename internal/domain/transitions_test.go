package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidTransition(t *testing.T) {
	cases := []struct {
		from, to TaskStatus
		want     bool
	}{
		{TaskCreated, TaskApproved, true},
		{TaskCreated, TaskNotApproved, true},
		{TaskCreated, TaskCompleted, true},
		{TaskCreated, TaskInProgress, false},
		{TaskApproved, TaskPrepared, true},
		{TaskPrepared, TaskAssigned, true},
		{TaskAssigned, TaskAccepted, true},
		{TaskAccepted, TaskInProgress, true},
		{TaskInProgress, TaskCompleted, true},
		{TaskInProgress, TaskApproved, false},
		{TaskCompleted, TaskCreated, true},
		{TaskCompleted, TaskApproved, false},
		{TaskNotApproved, TaskCreated, false},
		{TaskNotApproved, TaskCompleted, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, IsValidTransition(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

// Every reachable status must itself have an entry in the transition table,
// so no task can get stuck in an unknown state.
func TestTransitionTableIsClosed(t *testing.T) {
	for from, targets := range standardTransitions {
		for _, to := range targets {
			_, ok := standardTransitions[to]
			assert.True(t, ok, "%s -> %s leads outside the table", from, to)
		}
	}
}

func TestValidNextStatusesReturnsCopy(t *testing.T) {
	first := ValidNextStatuses(TaskCreated)
	first[0] = TaskStatus("mutated")

	second := ValidNextStatuses(TaskCreated)
	assert.NotEqual(t, TaskStatus("mutated"), second[0])
}

func TestValidateTransition(t *testing.T) {
	assert.NoError(t, ValidateTransition(TaskCreated, TaskApproved))

	err := ValidateTransition(TaskNotApproved, TaskCreated)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "none")

	err = ValidateTransition(TaskCreated, TaskAssigned)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "approved")
}
