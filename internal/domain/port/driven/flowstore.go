package driven

import (
	"context"
	"time"

	"github.com/adalabs/parent-dashboard/internal/domain/model"
)

// FlowStore defines the driven port for pending login flow persistence.
// Flows are written when a sign-in starts and consumed exactly once when
// the callback arrives.
type FlowStore interface {
	// Create persists a new pending flow.
	Create(ctx context.Context, flow model.LoginFlow) error

	// Consume atomically retrieves and deletes the flow for the given
	// state. Returns (nil, nil) if no flow exists, including when it was
	// already consumed. Expired flows are consumed but still returned so
	// callers can distinguish expiry from absence.
	Consume(ctx context.Context, state string) (*model.LoginFlow, error)

	// DeleteExpired removes flows whose ExpiresAt is before now and
	// reports how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
