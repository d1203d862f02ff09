package services

import (
	"context"
	"fmt"

	"taxsync/internal/domain"
	"taxsync/internal/logging"
	"taxsync/internal/ports"
)

// DefaultHistoryLimit is the number of runs listed when no limit is given
const DefaultHistoryLimit = 20

// HistoryService reads recorded publish runs
type HistoryService struct {
	reader ports.PublishLogReader
}

// NewHistoryService creates a new HistoryService
func NewHistoryService(reader ports.PublishLogReader) *HistoryService {
	return &HistoryService{
		reader: reader,
	}
}

// List returns the most recent runs, optionally for one branch only
func (s *HistoryService) List(ctx context.Context, branch string, limit int) ([]domain.PublishRecord, error) {
	if limit < 0 {
		return nil, domain.InvalidInputError("list history", fmt.Errorf("limit must not be negative"))
	}
	if limit == 0 {
		limit = DefaultHistoryLimit
	}

	logging.Logger.Debug("Listing publish history", "branch", branch, "limit", limit)
	records, err := s.reader.List(ctx, ports.PublishLogFilter{Branch: branch, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("failed to list publish history: %w", err)
	}
	return records, nil
}

// Get returns one run by id
func (s *HistoryService) Get(ctx context.Context, id string) (*domain.PublishRecord, error) {
	if id == "" {
		return nil, domain.InvalidInputError("get history", fmt.Errorf("run id is required"))
	}

	record, err := s.reader.Get(ctx, id)
	if err != nil {
		return nil, domain.WrapError(err, "get history", "", "")
	}
	return record, nil
}
