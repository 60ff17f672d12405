package utils

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

const IDSeparator = ":"

var InvalidNodeIDError = errors.New("node id must not contain whitespace or ':'")

// NewRecordID returns a fresh identifier for a stored record.
func NewRecordID() string {
	return uuid.NewString()
}

// CheckNodeID validates a cluster node identity. The empty identity is valid
// and means the process runs standalone.
func CheckNodeID(id string) error {
	if strings.Contains(id, IDSeparator) || strings.ContainsAny(id, " \t\r\n") {
		return InvalidNodeIDError
	}

	return nil
}

// JoinKey builds a store key from its parts, skipping empty ones.
func JoinKey(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, IDSeparator)
}
