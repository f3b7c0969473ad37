package command

import (
	"encoding/json"

	"task-service/internal/domain/apperrors"
)

// taskUpdatableFields is the PATCH whitelist for tasks.
var taskUpdatableFields = map[string]struct{}{
	"description": {},
	"completed":   {},
}

type UpdateTaskCommand struct {
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

func ParseUpdateTaskCommand(body []byte) (*UpdateTaskCommand, error) {
	fields, err := decodeFields(body)
	if err != nil {
		return nil, err
	}
	if err := checkWhitelist(fields, taskUpdatableFields); err != nil {
		return nil, err
	}

	var cmd UpdateTaskCommand
	if err := json.Unmarshal(body, &cmd); err != nil {
		return nil, apperrors.Validation("invalid request body")
	}
	return &cmd, nil
}
