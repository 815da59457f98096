package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"maps"
	"slices"
	"strings"
)

// GenerateEnvID creates a deterministic identifier for a set of units keyed by identity.
func GenerateEnvID(units map[string]string) string {
	var builder strings.Builder
	for _, key := range slices.Sorted(maps.Keys(units)) {
		builder.WriteString(key)
		builder.WriteString("=")
		builder.WriteString(units[key])
		builder.WriteString(";")
	}

	hash := sha256.Sum256([]byte(builder.String()))
	return hex.EncodeToString(hash[:])
}
