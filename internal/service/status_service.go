package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"wellness-backend/internal/model"
	"wellness-backend/internal/storage"
)

// statusListLimit caps how many records a single list call returns.
const statusListLimit = 1000

// StatusService manages the append-only status-check log.
type StatusService struct {
	store storage.StatusStore
}

func NewStatusService(store storage.StatusStore) *StatusService {
	return &StatusService{store: store}
}

func (s *StatusService) CreateStatusCheck(ctx context.Context, clientName string) (*model.StatusCheck, error) {
	check := &model.StatusCheck{
		ID:         uuid.New().String(),
		ClientName: clientName,
		Timestamp:  time.Now().UTC(),
	}

	if err := s.store.InsertStatusCheck(ctx, check); err != nil {
		return nil, fmt.Errorf("insert status check: %w", err)
	}

	return check, nil
}

func (s *StatusService) ListStatusChecks(ctx context.Context) ([]*model.StatusCheck, error) {
	checks, err := s.store.ListStatusChecks(ctx, statusListLimit)
	if err != nil {
		return nil, fmt.Errorf("list status checks: %w", err)
	}

	return checks, nil
}
