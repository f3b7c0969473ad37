package command

import (
	"encoding/json"

	"task-service/internal/domain/apperrors"
)

// userUpdatableFields is the PATCH whitelist for users. Any field outside it
// rejects the whole update before anything is applied.
var userUpdatableFields = map[string]struct{}{
	"name":     {},
	"email":    {},
	"password": {},
	"age":      {},
}

type UpdateUserCommand struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Age      *int    `json:"age"`
}

// ParseUpdateUserCommand decodes a PATCH body, enforcing the field
// whitelist. Unknown fields fail the entire request.
func ParseUpdateUserCommand(body []byte) (*UpdateUserCommand, error) {
	fields, err := decodeFields(body)
	if err != nil {
		return nil, err
	}
	if err := checkWhitelist(fields, userUpdatableFields); err != nil {
		return nil, err
	}

	var cmd UpdateUserCommand
	if err := json.Unmarshal(body, &cmd); err != nil {
		return nil, apperrors.Validation("invalid request body")
	}
	return &cmd, nil
}

func decodeFields(body []byte) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, apperrors.Validation("invalid request body")
	}
	return fields, nil
}

func checkWhitelist(fields map[string]json.RawMessage, allowed map[string]struct{}) error {
	for name := range fields {
		if _, ok := allowed[name]; !ok {
			return apperrors.Validationf("invalid update field: %s", name)
		}
	}
	return nil
}
