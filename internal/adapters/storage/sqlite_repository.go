package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"taxsync/internal/config"
	"taxsync/internal/domain"
	"taxsync/internal/logging"
	"taxsync/internal/ports"
)

const defaultListLimit = 50

// SQLiteRepository implements ports.PublishLogRepository using GORM
type SQLiteRepository struct {
	db *gorm.DB
}

// Verify interface compliance at compile time
var _ ports.PublishLogRepository = (*SQLiteRepository)(nil)

// gormLogger wraps the taxsync logger for GORM
type gormLogger struct {
	level logger.LogLevel
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &gormLogger{level: level}
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Info {
		logging.Logger.Info(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Warn {
		logging.Logger.Warn(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Error {
		logging.Logger.Error(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level < logger.Info {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logging.Logger.Error("gorm query error",
			"error", err,
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	} else if elapsed > 200*time.Millisecond {
		logging.Logger.Warn("slow query",
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	} else {
		logging.Logger.Debug("gorm query",
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	}
}

func newGormLogger() logger.Interface {
	if os.Getenv("TAXSYNC_DEBUG") == "1" {
		return (&gormLogger{}).LogMode(logger.Info)
	}
	return (&gormLogger{}).LogMode(logger.Silent)
}

// NewSQLiteRepository opens (and migrates) the publish history database
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	dbPath = config.ExpandPath(dbPath)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		PrepareStmt: false,
		NowFunc:     func() time.Time { return time.Now().UTC() },
		Logger:      newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL lets the history command read while a publish is writing
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")
	db.Exec("PRAGMA synchronous=NORMAL")

	if err := db.AutoMigrate(&PublishRunModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate publish_runs schema: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	logging.Logger.Debug("Publish history database opened", "path", dbPath)
	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Start implements PublishLogWriter.Start
func (r *SQLiteRepository) Start(ctx context.Context, record domain.PublishRecord) error {
	if record.ID == "" {
		return fmt.Errorf("publish run id is required")
	}
	model := domainToPublishRunModel(record)
	model.Status = statusRunning
	model.FinishedAt = nil

	return withRetry(func() error {
		if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
			return fmt.Errorf("failed to record publish run %s: %w", record.ID, err)
		}
		return nil
	}, 3)
}

// Finish implements PublishLogWriter.Finish
func (r *SQLiteRepository) Finish(ctx context.Context, record domain.PublishRecord) error {
	finishedAt := time.Now().UTC()
	if record.FinishedAt != nil {
		finishedAt = record.FinishedAt.UTC()
	}

	return withRetry(func() error {
		result := r.db.WithContext(ctx).Model(&PublishRunModel{}).
			Where("id = ?", record.ID).
			Updates(map[string]any{
				"changed_paths":       record.ChangedPaths,
				"commit_id":           record.CommitID.String(),
				"error_detail":        record.ErrorDetail,
				"error_kind":          string(record.ErrorKind),
				"finished_at":         finishedAt,
				"restoration_failure": record.RestorationFailure,
				"status":              string(record.Status),
			})
		if result.Error != nil {
			return fmt.Errorf("failed to finish publish run %s: %w", record.ID, result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.NotFoundError("finish publish run", fmt.Errorf("publish run %s not found", record.ID))
		}
		return nil
	}, 3)
}

// Get implements PublishLogReader.Get
func (r *SQLiteRepository) Get(ctx context.Context, id string) (*domain.PublishRecord, error) {
	var model PublishRunModel

	err := withRetry(func() error {
		return r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	}, 3)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFoundError("get publish run", fmt.Errorf("publish run %s not found", id))
		}
		return nil, fmt.Errorf("failed to get publish run %s: %w", id, err)
	}

	record := publishRunModelToDomain(model)
	return &record, nil
}

// List implements PublishLogReader.List, newest run first
func (r *SQLiteRepository) List(ctx context.Context, filter ports.PublishLogFilter) ([]domain.PublishRecord, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	var models []PublishRunModel
	err := withRetry(func() error {
		query := r.db.WithContext(ctx).Order("started_at DESC").Limit(limit)
		if filter.Branch != "" {
			query = query.Where("branch = ?", filter.Branch)
		}
		return query.Find(&models).Error
	}, 3)
	if err != nil {
		return nil, fmt.Errorf("failed to list publish runs: %w", err)
	}

	records := make([]domain.PublishRecord, 0, len(models))
	for _, m := range models {
		records = append(records, publishRunModelToDomain(m))
	}
	return records, nil
}

// withRetry retries operations on SQLITE_BUSY with exponential backoff
func withRetry(fn func() error, maxRetries int) error {
	for i := 0; i < maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}

		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked) {
			time.Sleep(time.Millisecond * time.Duration(50*(i+1)))
			continue
		}

		return err
	}
	return fmt.Errorf("operation failed after %d retries", maxRetries)
}
