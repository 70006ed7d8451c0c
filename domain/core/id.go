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
	// Falls back to v4 if v7 is not available (for compatibility)
	id, err := uuid.NewV7()
	if err != nil {
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
	// SessionID identifies one wizard browsing session. It is minted when the
	// first survey page is requested and travels in a cookie.
	SessionID ID

	// FeatureKey is the stable name under which a question's answer is stored
	// and later consumed by the prediction model.
	FeatureKey string

	// PageID identifies a catalog page; branching targets refer to these.
	PageID string
)

func NewSessionID() SessionID { return SessionID(NewID()) }

func (id SessionID) String() string { return ID(id).String() }
func (k FeatureKey) String() string { return string(k) }
func (p PageID) String() string { return string(p) }

// ParseSessionID parses a cookie value into a SessionID
func ParseSessionID(s string) (SessionID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("session ID cannot be empty")
	}
	return SessionID(s), nil
}
