package core

import "encoding/json"

// Role represents a message participant role.
type Role string

const (
	RoleUser      Role = "user"
	RoleSystem    Role = "system"
	RoleAssistant Role = "assistant"
)

// ParseRole maps a wire string to its Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleSystem, RoleAssistant:
		return Role(s), nil
	}
	return "", &InvalidEnumError{Type: "role", Value: s}
}

// MarshalJSON emits the lowercase role name. Unnamed roles fail.
func (r Role) MarshalJSON() ([]byte, error) {
	if _, err := ParseRole(string(r)); err != nil {
		return nil, err
	}
	return json.Marshal(string(r))
}

// UnmarshalJSON accepts only the three role names.
func (r *Role) UnmarshalJSON(data []byte) error {
	return decodeEnum(data, r, ParseRole)
}

// FinishReason classifies why a choice stopped generating.
type FinishReason string

const (
	FinishReasonStop          FinishReason = "stop"
	FinishReasonLength        FinishReason = "length"
	FinishReasonContentFilter FinishReason = "content_filter"
)

// ParseFinishReason maps a wire string to its FinishReason.
func ParseFinishReason(s string) (FinishReason, error) {
	switch FinishReason(s) {
	case FinishReasonStop, FinishReasonLength, FinishReasonContentFilter:
		return FinishReason(s), nil
	}
	return "", &InvalidEnumError{Type: "finish_reason", Value: s}
}

// MarshalJSON emits the snake_case reason. Unnamed reasons fail.
func (f FinishReason) MarshalJSON() ([]byte, error) {
	if _, err := ParseFinishReason(string(f)); err != nil {
		return nil, err
	}
	return json.Marshal(string(f))
}

// UnmarshalJSON accepts only the known finish reasons.
func (f *FinishReason) UnmarshalJSON(data []byte) error {
	return decodeEnum(data, f, ParseFinishReason)
}

// decodeEnum decodes a JSON string and validates it with parse.
func decodeEnum[T ~string](data []byte, dst *T, parse func(string) (T, error)) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := parse(s)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}
