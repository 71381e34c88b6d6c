package tasks

import "errors"

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrEquipmentNotFound = errors.New("equipment not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)
