package domain

import (
	"fmt"
	"strings"
)

// standardTransitions is the single source of truth for the task status
// lifecycle. Admins may short-circuit to completed or not_approved from any
// open state; completed reopens to created when a mechanic flags additional
// work. not_approved is terminal.
var standardTransitions = map[TaskStatus][]TaskStatus{
	TaskCreated:     {TaskApproved, TaskNotApproved, TaskCompleted},
	TaskApproved:    {TaskPrepared, TaskNotApproved, TaskCompleted},
	TaskPrepared:    {TaskAssigned, TaskNotApproved, TaskCompleted},
	TaskAssigned:    {TaskAccepted, TaskNotApproved, TaskCompleted},
	TaskAccepted:    {TaskInProgress, TaskNotApproved, TaskCompleted},
	TaskInProgress:  {TaskCompleted, TaskNotApproved},
	TaskCompleted:   {TaskCreated},
	TaskNotApproved: {},
}

func IsValidTransition(from, to TaskStatus) bool {
	for _, s := range standardTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ValidNextStatuses returns the allowed targets from the given status. The
// returned slice is a copy; callers may mutate it.
func ValidNextStatuses(from TaskStatus) []TaskStatus {
	next := standardTransitions[from]
	out := make([]TaskStatus, len(next))
	copy(out, next)
	return out
}

// ValidateTransition returns nil when from -> to is allowed, or an error
// naming the invalid pair and the valid alternatives.
func ValidateTransition(from, to TaskStatus) error {
	if IsValidTransition(from, to) {
		return nil
	}

	next := standardTransitions[from]
	alternatives := "none"
	if len(next) > 0 {
		parts := make([]string, len(next))
		for i, s := range next {
			parts[i] = string(s)
		}
		alternatives = strings.Join(parts, ", ")
	}

	return fmt.Errorf(
		"invalid status transition: %s -> %s. Valid transitions from %q: %s",
		from, to, from, alternatives,
	)
}
