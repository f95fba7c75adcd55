package cart

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"

	"github.com/cwmarketing/loyalty-go/pkg/models"
)

// Fingerprint derives the identity key for a product plus its exact
// modifier selection: the product id concatenated with every selected
// option name (group order, then option order), digested to a stable
// hex string. Two lines with equal fingerprints are the same line.
// SHA-1 is an identity hash here, not a security boundary.
func Fingerprint(productID string, modifiers []models.Modifier) string {
	var b strings.Builder
	b.WriteString(productID)
	for _, modifier := range modifiers {
		for _, option := range modifier.Options {
			b.WriteString(option.Name)
		}
	}
	sum := sha1.Sum([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
