// Package repo implements the data persistence layer. This file provides
// repository helpers for the Idempotency model used to implement safe-retry
// semantics for the POST endpoints that create documents.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/newmum-companion/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrDuplicate indicates that an idempotency record already exists for the
// given (scope, key) pair.
var ErrDuplicate = errors.New("duplicate")

// GetIdempotency returns a non-expired record or ErrNotFound.
func GetIdempotency(ctx context.Context, db *gorm.DB, scope, key string, now time.Time) (*domain.Idempotency, error) {
	if strings.TrimSpace(scope) == "" || strings.TrimSpace(key) == "" {
		return nil, ErrNotFound
	}
	var rec domain.Idempotency
	err := db.WithContext(ctx).
		Where("scope = ? AND key = ? AND expires_at > ?", scope, key, now).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// CreateIdempotency inserts a record and returns ErrDuplicate on unique
// violation. An expired record for the same (scope, key) is replaced.
func CreateIdempotency(ctx context.Context, db *gorm.DB, scope, key, documentID string, status int, ttl time.Duration) (*domain.Idempotency, error) {
	now := time.Now().UTC()
	rec := &domain.Idempotency{
		ID:         uuid.NewString(),
		Scope:      scope,
		Key:        key,
		DocumentID: documentID,
		Status:     status,
		CreatedAt:  now,
		ExpiresAt:  now.Add(ttl),
	}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("scope = ? AND key = ? AND expires_at <= ?", scope, key, now).
			Delete(&domain.Idempotency{}).Error; err != nil {
			return err
		}
		return tx.Create(rec).Error
	})
	if err != nil {
		// glebarez/sqlite often returns plain-text errors for UNIQUE violations.
		low := strings.ToLower(err.Error())
		if errors.Is(err, gorm.ErrDuplicatedKey) ||
			strings.Contains(low, "unique constraint failed") ||
			strings.Contains(low, "constraint failed: unique") ||
			strings.Contains(low, "duplicate key") {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return rec, nil
}

// CompleteIdempotency fills in documentID on a pending record and extends
// it to ttl. ErrNotFound is returned when no pending record exists.
func CompleteIdempotency(ctx context.Context, db *gorm.DB, scope, key, documentID string, status int, ttl time.Duration) error {
	res := db.WithContext(ctx).
		Model(&domain.Idempotency{}).
		Where("scope = ? AND key = ? AND document_id = ''", scope, key).
		Updates(map[string]any{
			"document_id": documentID,
			"status":      status,
			"expires_at":  time.Now().UTC().Add(ttl),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePendingIdempotency removes a record that was never completed.
func DeletePendingIdempotency(ctx context.Context, db *gorm.DB, scope, key string) error {
	return db.WithContext(ctx).
		Where("scope = ? AND key = ? AND document_id = ''", scope, key).
		Delete(&domain.Idempotency{}).Error
}

// IdempotencyStore adapts the helpers above to the services contract. A
// record with an empty DocumentID is a reservation held by a request that
// is still creating its document.
type IdempotencyStore struct {
	DB *gorm.DB
}

// Lookup returns the document id recorded for (scope, key), if still valid.
// Pending reservations are reported as not found.
func (s IdempotencyStore) Lookup(ctx context.Context, scope, key string, now time.Time) (string, bool, error) {
	rec, err := GetIdempotency(ctx, s.DB, scope, key, now)
	if errors.Is(err, ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if rec.DocumentID == "" {
		return "", false, nil
	}
	return rec.DocumentID, true, nil
}

// Reserve inserts a pending record for (scope, key) that expires after
// lease. It reports false when another request already holds the key.
func (s IdempotencyStore) Reserve(ctx context.Context, scope, key string, lease time.Duration) (bool, error) {
	_, err := CreateIdempotency(ctx, s.DB, scope, key, "", 0, lease)
	if errors.Is(err, ErrDuplicate) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Complete records documentID on the reservation for (scope, key) and keeps
// it for ttl.
func (s IdempotencyStore) Complete(ctx context.Context, scope, key, documentID string, ttl time.Duration) error {
	return CompleteIdempotency(ctx, s.DB, scope, key, documentID, 200, ttl)
}

// Release drops the reservation for (scope, key) so a retry can create.
func (s IdempotencyStore) Release(ctx context.Context, scope, key string) error {
	return DeletePendingIdempotency(ctx, s.DB, scope, key)
}
