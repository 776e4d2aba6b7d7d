package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tbourn/newmum-companion/internal/domain"
)

// DocumentStore is the persistence contract shared by the SQL and Mongo
// backends.
type DocumentStore interface {
	// CreateDocument persists record in collection and returns its id.
	CreateDocument(ctx context.Context, collection string, record any) (string, error)

	// GetDocuments returns up to limit documents of collection matching every
	// filter field. An empty, non-nil slice is returned when nothing matches.
	GetDocuments(ctx context.Context, collection string, filter map[string]any, limit int) ([]domain.Document, error)
}

// IdempotencyStore remembers which document a (scope, key) pair created.
// A key is reserved before its document is written so that concurrent
// requests with the same key create at most one document.
type IdempotencyStore interface {
	// Lookup returns the recorded document id when a completed record exists.
	Lookup(ctx context.Context, scope, key string, now time.Time) (documentID string, found bool, err error)

	// Reserve claims (scope, key) for lease. It reports false when another
	// request holds the key.
	Reserve(ctx context.Context, scope, key string, lease time.Duration) (bool, error)

	// Complete records documentID on a reservation and keeps it for ttl.
	Complete(ctx context.Context, scope, key, documentID string, ttl time.Duration) error

	// Release drops a reservation whose create failed.
	Release(ctx context.Context, scope, key string) error
}

// IdemKey identifies a client retry window. The zero value disables
// idempotency for a call.
type IdemKey struct {
	Scope string
	Key   string
}

func (k IdemKey) enabled() bool { return k.Scope != "" && k.Key != "" }

// CreateResult is returned by create operations.
type CreateResult struct {
	ID string
	// Replayed is true when ID comes from an earlier request with the same
	// idempotency key and nothing new was written.
	Replayed bool
}

// DefaultIdempotencyTTL applies when a service is built without a TTL.
const DefaultIdempotencyTTL = 24 * time.Hour

// Reservation timings. A request that finds the key reserved polls until
// the holder completes, releases, or its lease runs out.
var (
	reserveLease = 30 * time.Second
	reservePoll  = 20 * time.Millisecond
)

// createOnce runs create unless idem already maps to a document. Requests
// racing on the same key wait for the first one and replay its id.
func createOnce(ctx context.Context, idem IdemKey, store IdempotencyStore, ttl time.Duration, create func() (string, error)) (CreateResult, error) {
	if store == nil || !idem.enabled() {
		id, err := create()
		if err != nil {
			return CreateResult{}, Store(err)
		}
		return CreateResult{ID: id}, nil
	}
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}

	for {
		id, found, err := store.Lookup(ctx, idem.Scope, idem.Key, time.Now().UTC())
		if err != nil {
			return CreateResult{}, Store(err)
		}
		if found {
			return CreateResult{ID: id, Replayed: true}, nil
		}
		ok, err := store.Reserve(ctx, idem.Scope, idem.Key, reserveLease)
		if err != nil {
			return CreateResult{}, Store(err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return CreateResult{}, Store(ctx.Err())
		case <-time.After(reservePoll):
		}
	}

	// The reservation must be settled even if the caller has gone away.
	bg := context.WithoutCancel(ctx)
	id, err := create()
	if err != nil {
		if rerr := store.Release(bg, idem.Scope, idem.Key); rerr != nil {
			log.Warn().Err(rerr).Str("scope", idem.Scope).Msg("idempotency release failed")
		}
		return CreateResult{}, Store(err)
	}
	if err := store.Complete(bg, idem.Scope, idem.Key, id, ttl); err != nil {
		// The document exists; only replays of this key are affected.
		log.Warn().Err(err).Str("scope", idem.Scope).Str("document_id", id).Msg("idempotency record not saved")
	}
	return CreateResult{ID: id}, nil
}
