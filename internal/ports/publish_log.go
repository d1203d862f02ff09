package ports

import (
	"context"

	"taxsync/internal/domain"
)

// PublishLogReader reads publish history
type PublishLogReader interface {
	Get(ctx context.Context, id string) (*domain.PublishRecord, error)
	List(ctx context.Context, filter PublishLogFilter) ([]domain.PublishRecord, error)
}

// PublishLogWriter records publish runs
type PublishLogWriter interface {
	Finish(ctx context.Context, record domain.PublishRecord) error
	Start(ctx context.Context, record domain.PublishRecord) error
}

// PublishLogFilter narrows a history listing
type PublishLogFilter struct {
	Branch string
	Limit  int
}

// PublishLogRepository is the composite interface
type PublishLogRepository interface {
	PublishLogReader
	PublishLogWriter
	Close() error
}
