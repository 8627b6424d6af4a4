package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	// RunID identifies a single vetting run: one candidate pushed through
	// the significance pipeline once.
	RunID ID
	// TargetKey names the star or catalog entry a candidate belongs to.
	TargetKey ID
)

func (id RunID) String() string     { return ID(id).String() }
func (id TargetKey) String() string { return ID(id).String() }

// NewRunID creates a fresh run identifier
func NewRunID() RunID {
	return RunID(NewID())
}

// ParseRunID parses a string into RunID
func ParseRunID(s string) (RunID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("run ID cannot be empty")
	}
	return RunID(s), nil
}

// ParseTargetKey parses a string into TargetKey
func ParseTargetKey(s string) (TargetKey, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("target key cannot be empty")
	}
	return TargetKey(s), nil
}
