package storage

import "time"

// PublishRunModel is the GORM model for publish_runs table
type PublishRunModel struct {
	Branch             string     `gorm:"not null;index:idx_branch"`
	ChangedPaths       int        `gorm:"not null;default:0"`
	CommitID           string     `gorm:"default:''"`
	CreatedAt          time.Time
	ErrorDetail        string     `gorm:"default:''"`
	ErrorKind          string     `gorm:"default:''"`
	FinishedAt         *time.Time `gorm:"default:null"`
	ID                 string     `gorm:"primaryKey"`
	RestorationFailure string     `gorm:"default:''"`
	SourceRepo         string     `gorm:"not null;default:''"`
	StartedAt          time.Time  `gorm:"not null;index:idx_started_at"`
	Status             string     `gorm:"not null;default:'running';check:status IN ('running','published','no-changes','failed')"`
	TargetRepo         string     `gorm:"not null;default:''"`
	UpdatedAt          time.Time
}

// TableName specifies the table name for GORM
func (PublishRunModel) TableName() string { return "publish_runs" }

// statusRunning marks a run that has started but not finished
const statusRunning = "running"
