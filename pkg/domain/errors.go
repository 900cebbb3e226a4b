package domain

import "errors"

// ErrInvalidRule is returned when a malformed rule is registered.
var ErrInvalidRule = errors.New("invalid rule")

// ErrInvalidChoice is returned when a label producer yields an empty topic or label.
var ErrInvalidChoice = errors.New("invalid choice")

// ErrChoiceNotFound is returned when a selection matches no displayed choice.
var ErrChoiceNotFound = errors.New("choice not found")

// ErrInputDisabled is returned when a selection arrives while choices are disabled.
var ErrInputDisabled = errors.New("input disabled")
