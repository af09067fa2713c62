package storage

import (
	"context"

	"wellness-backend/internal/model"
)

// StatusStore is the append-only status-check log. Records are never updated
// or deleted; reads return up to limit records in store-dependent order.
type StatusStore interface {
	InsertStatusCheck(ctx context.Context, check *model.StatusCheck) error
	ListStatusChecks(ctx context.Context, limit int) ([]*model.StatusCheck, error)
	Close(ctx context.Context) error
}
