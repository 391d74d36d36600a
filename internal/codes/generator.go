// Package codes produces the short public identifiers handed to schools and
// students, distinct from their internal numeric ids.
package codes

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"
)

const (
	// SchoolPrefix and StudentPrefix select the code family.
	SchoolPrefix  = "SCH"
	StudentPrefix = "STD"

	randomChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	randomLen    = 3
	timeDigits   = 6
	maxAttempts  = 1000
)

// ErrExhausted is returned when the retry cap is reached without finding a
// free code. With the time component this only happens when the existence
// check misbehaves.
var ErrExhausted = errors.New("codes: exhausted unique code generation attempts")

// ExistsFunc reports whether a code is already taken. It is advisory: the
// store's unique index remains the final authority.
type ExistsFunc func(ctx context.Context, code string) (bool, error)

// Generate produces "<PREFIX>-<6 digit time suffix>-<3 random chars>" using
// the last six digits of the current unix-millisecond clock and uppercase
// alphanumeric randomness. Safe for concurrent use.
func Generate(prefix string) string {
	millis := fmt.Sprintf("%d", time.Now().UnixMilli())
	if len(millis) > timeDigits {
		millis = millis[len(millis)-timeDigits:]
	}

	buf := make([]byte, randomLen)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the OS entropy source is broken;
		// fall back to the clock so code creation still proceeds.
		nanos := time.Now().UnixNano()
		for i := range buf {
			buf[i] = byte(nanos >> (i * 8))
		}
	}
	for i := range buf {
		buf[i] = randomChars[int(buf[i])%len(randomChars)]
	}

	return fmt.Sprintf("%s-%s-%s", prefix, millis, buf)
}

// EnsureUnique generates codes until exists reports one as free, capped at
// 1000 attempts. A caller inserting the returned code must still handle a
// duplicate-key error from the store and retry once with a fresh code.
func EnsureUnique(ctx context.Context, prefix string, exists ExistsFunc) (string, error) {
	for i := 0; i < maxAttempts; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		code := Generate(prefix)
		taken, err := exists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("codes: existence check failed: %w", err)
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrExhausted
}
