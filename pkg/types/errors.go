package types

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrPetNotFound            = errors.New("pet not found")
	ErrApplicationNotFound    = errors.New("adoption application not found")
	ErrContactMessageNotFound = errors.New("contact message not found")
	ErrUserNotFound           = errors.New("user not found")

	// ErrInvalidStatus rejects an unrecognized status value before any
	// mutation happens.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrDuplicateApplication is the conflict for a second pending
	// application with the same email for the same pet.
	ErrDuplicateApplication = errors.New("a pending application for this pet already exists for this email")

	ErrEmailTaken = errors.New("an account with this email already exists")
)

// ValidationErrors maps field names to user-facing messages. Handlers render
// them next to the offending form fields.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}
