// Package refnum allocates human-readable application reference numbers of
// the form PREFIX-YYYY-NNNNNN.
package refnum

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"
)

// MaxAttempts bounds the number of candidates tried before giving up.
const MaxAttempts = 5

// ErrExhausted is returned when no unique reference number could be found
// within MaxAttempts candidates.
var ErrExhausted = errors.New("could not allocate a unique reference number")

const suffixRange = 1000000 // six random digits

// Generate produces a candidate reference number for the given prefix.
func Generate(prefix string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(suffixRange))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%d-%06d", prefix, time.Now().Year(), n.Int64()), nil
}

// ExistsFunc reports whether a candidate reference number is already taken.
type ExistsFunc func(ctx context.Context, ref string) (bool, error)

// GenerateUnique generates candidates until one passes the uniqueness check,
// trying at most MaxAttempts times. Exhausting the attempts returns
// ErrExhausted; the caller must not create a record in that case.
func GenerateUnique(ctx context.Context, prefix string, exists ExistsFunc) (string, error) {
	for i := 0; i < MaxAttempts; i++ {
		ref, err := Generate(prefix)
		if err != nil {
			return "", err
		}
		taken, err := exists(ctx, ref)
		if err != nil {
			return "", err
		}
		if !taken {
			return ref, nil
		}
	}
	return "", ErrExhausted
}
