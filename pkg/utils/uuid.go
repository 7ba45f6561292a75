package utils

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

// CodeLength is the length of generated supplier and client codes
const CodeLength = 8

// DefaultCodeAttempts caps random retries before falling back to a suffix
const DefaultCodeAttempts = 100

// CodeGenerator produces candidate codes
type CodeGenerator func() string

// NewID generates a new opaque record id
func NewID() string {
	return uuid.New().String()
}

// GenerateCode generates a random uppercase base-36 code
func GenerateCode() string {
	u := uuid.New()
	code := strings.ToUpper(new(big.Int).SetBytes(u[:]).Text(36))
	if len(code) < CodeLength {
		code = strings.Repeat("0", CodeLength-len(code)) + code
	}
	return code[:CodeLength]
}

// GenerateUniqueCode generates a code that is not in existing
func GenerateUniqueCode(existing []string) string {
	return GenerateUniqueCodeWith(existing, GenerateCode, DefaultCodeAttempts)
}

// GenerateUniqueCodeWith draws codes from gen until one is not in existing.
// After maxAttempts collisions it appends -1, -2, ... to the last candidate
// until the result is free, so it always terminates.
func GenerateUniqueCodeWith(existing []string, gen CodeGenerator, maxAttempts int) string {
	taken := make(map[string]struct{}, len(existing))
	for _, c := range existing {
		taken[c] = struct{}{}
	}
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var code string
	for i := 0; i < maxAttempts; i++ {
		code = gen()
		if _, ok := taken[code]; !ok {
			return code
		}
	}

	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s-%d", code, n)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}
