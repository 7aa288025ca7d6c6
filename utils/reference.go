package utils

import (
	"github.com/google/uuid"
)

// GenerateReference produces the unique reference correlating an internal
// transaction with a gateway-side operation. 128 bits of randomness; collision
// is treated as impossible.
func GenerateReference() string {
	return uuid.NewString()
}
