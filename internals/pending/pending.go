// Package pending holds unconfirmed signups awaiting OTP proof.
//
// A registration lives under its email key until it is verified, its attempts
// run out, or its validity window lapses. Requesting a new code for the same
// email overwrites the old record, which restarts the attempt counter and the
// expiry clock and invalidates the previous code. Expiry is checked lazily at
// verification time; there is no background sweep.
package pending

import (
	"context"
	"time"
)

const (
	// ValidityWindow is how long a code stays verifiable after issuance.
	ValidityWindow = 10 * time.Minute

	// MaxAttempts is the number of wrong codes tolerated before the record
	// is dropped and the user has to start over.
	MaxAttempts = 3
)

// Registration is one unconfirmed signup attempt.
type Registration struct {
	Email     string    `json:"email"`
	Code      string    `json:"code"`
	Profile   []byte    `json:"profile"` // serialized signup payload, persisted only on success
	Attempts  int       `json:"attempts"`
	CreatedAt time.Time `json:"createdAt"`
}

// Expired reports whether the record is past its validity window at now.
func (r *Registration) Expired(now time.Time) bool {
	return now.Sub(r.CreatedAt) > ValidityWindow
}

// Store is a keyed, expiring store of pending registrations, at most one per
// email. Implementations must treat Put as an overwrite.
type Store interface {
	Put(ctx context.Context, reg Registration) error

	// Get returns nil when no record exists for the email.
	Get(ctx context.Context, email string) (*Registration, error)

	// DecrementAttempts lowers the attempt counter by one and returns the
	// remaining attempts.
	DecrementAttempts(ctx context.Context, email string) (int, error)

	Delete(ctx context.Context, email string) error
}
