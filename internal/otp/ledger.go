// Package otp holds ephemeral, single-use verification codes in memory.
//
// The ledger backs registration and password-reset flows: a code is issued
// under an opaque key, verified against the caller's input, and consumed
// exactly once. Entries expire after their TTL whether or not the expiry
// timer has fired yet.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/lawlink-api/internal/domain"
)

const (
	codeMin  = 100000
	codeSpan = 900000 // codes are 6 digits: [100000, 999999]
)

type entry[T any] struct {
	mu        sync.Mutex
	code      string
	expiresAt time.Time
	payload   T
	timer     *time.Timer
	gone      bool // consumed or replaced while another goroutine holds the pointer
	claimed   bool // a caller is mid-finalize; the entry is invisible until released
}

// Ledger is an in-memory table of pending verification codes keyed by an
// opaque string (a ticket ID or an email address). The map is guarded by one
// mutex; each entry carries its own, so the lookup-compare-consume sequence is
// serialized per key rather than globally.
type Ledger[T any] struct {
	mu      sync.Mutex
	entries map[string]*entry[T]
	now     func() time.Time
}

func NewLedger[T any]() *Ledger[T] {
	return &Ledger[T]{
		entries: make(map[string]*entry[T]),
		now:     time.Now,
	}
}

// Issue stores payload under key with a fresh 6-digit code and returns the
// code. Any existing entry under the same key is replaced — only the latest
// code for a key is ever valid. A timer removes the entry at expiry; Verify
// also checks expiry lazily so a late timer cannot extend a code's life.
func (l *Ledger[T]) Issue(key string, payload T, ttl time.Duration) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", err
	}

	e := &entry[T]{
		code:      code,
		expiresAt: l.now().Add(ttl),
		payload:   payload,
	}
	e.timer = time.AfterFunc(ttl, func() { l.remove(key, e) })

	l.mu.Lock()
	old := l.entries[key]
	l.entries[key] = e
	l.mu.Unlock()

	if old != nil {
		old.timer.Stop()
		old.mu.Lock()
		old.gone = true
		old.mu.Unlock()
	}
	return code, nil
}

// Verify checks the supplied code against the entry under key. It does not
// consume: a mismatch leaves the entry intact so the caller can retry within
// the TTL. Consumed and swept entries are indistinguishable from never-issued
// ones.
func (l *Ledger[T]) Verify(key, code string) (T, error) {
	var zero T

	l.mu.Lock()
	e, ok := l.entries[key]
	l.mu.Unlock()
	if !ok {
		return zero, fmt.Errorf("verification code: %w", domain.ErrNotFound)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gone || e.claimed {
		return zero, fmt.Errorf("verification code: %w", domain.ErrNotFound)
	}
	if e.code != code {
		return zero, fmt.Errorf("verification code mismatch: %w", domain.ErrUnauthorized)
	}
	if l.now().After(e.expiresAt) {
		return zero, fmt.Errorf("verification code: %w", domain.ErrExpired)
	}
	return e.payload, nil
}

// Claim verifies the supplied code and, on success, marks the entry as claimed
// so concurrent Claim and Verify calls for the same key fail with ErrNotFound.
// The caller owns the entry until it calls Consume (success) or Release (to
// allow a retry within the TTL). A mismatch leaves the entry unclaimed.
func (l *Ledger[T]) Claim(key, code string) (T, error) {
	var zero T

	l.mu.Lock()
	e, ok := l.entries[key]
	l.mu.Unlock()
	if !ok {
		return zero, fmt.Errorf("verification code: %w", domain.ErrNotFound)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gone || e.claimed {
		return zero, fmt.Errorf("verification code: %w", domain.ErrNotFound)
	}
	if e.code != code {
		return zero, fmt.Errorf("verification code mismatch: %w", domain.ErrUnauthorized)
	}
	if l.now().After(e.expiresAt) {
		return zero, fmt.Errorf("verification code: %w", domain.ErrExpired)
	}
	e.claimed = true
	return e.payload, nil
}

// Release undoes a Claim, making the entry claimable again within its TTL.
// Safe to call for keys that no longer exist.
func (l *Ledger[T]) Release(key string) {
	l.mu.Lock()
	e, ok := l.entries[key]
	l.mu.Unlock()
	if !ok {
		return
	}

	e.mu.Lock()
	e.claimed = false
	e.mu.Unlock()
}

// Consume deletes the entry under key and cancels its expiry timer. Safe to
// call for keys that no longer exist.
func (l *Ledger[T]) Consume(key string) {
	l.mu.Lock()
	e, ok := l.entries[key]
	if ok {
		delete(l.entries, key)
	}
	l.mu.Unlock()
	if !ok {
		return
	}

	e.timer.Stop()
	e.mu.Lock()
	e.gone = true
	e.mu.Unlock()
}

// remove is the expiry-timer callback. It only deletes the entry if the map
// still holds the same pointer; a key reissued in the meantime keeps its new
// entry.
func (l *Ledger[T]) remove(key string, e *entry[T]) {
	l.mu.Lock()
	if cur, ok := l.entries[key]; ok && cur == e {
		delete(l.entries, key)
	}
	l.mu.Unlock()

	e.mu.Lock()
	e.gone = true
	e.mu.Unlock()
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpan))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+codeMin), nil
}
