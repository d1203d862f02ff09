package storage

import (
	"taxsync/internal/domain"
)

// publishRunModelToDomain converts a PublishRunModel (GORM) to domain.PublishRecord
func publishRunModelToDomain(m PublishRunModel) domain.PublishRecord {
	status := domain.PublishStatus(m.Status)
	if m.Status == statusRunning {
		status = ""
	}
	return domain.PublishRecord{
		Branch:             m.Branch,
		ChangedPaths:       m.ChangedPaths,
		CommitID:           domain.ObjectID(m.CommitID),
		ErrorDetail:        m.ErrorDetail,
		ErrorKind:          domain.ErrorKind(m.ErrorKind),
		FinishedAt:         m.FinishedAt,
		ID:                 m.ID,
		RestorationFailure: m.RestorationFailure,
		SourceRepo:         m.SourceRepo,
		StartedAt:          m.StartedAt,
		Status:             status,
		TargetRepo:         m.TargetRepo,
	}
}

// domainToPublishRunModel converts a domain.PublishRecord to PublishRunModel (GORM)
func domainToPublishRunModel(r domain.PublishRecord) PublishRunModel {
	status := string(r.Status)
	if status == "" {
		status = statusRunning
	}
	return PublishRunModel{
		Branch:             r.Branch,
		ChangedPaths:       r.ChangedPaths,
		CommitID:           r.CommitID.String(),
		ErrorDetail:        r.ErrorDetail,
		ErrorKind:          string(r.ErrorKind),
		FinishedAt:         r.FinishedAt,
		ID:                 r.ID,
		RestorationFailure: r.RestorationFailure,
		SourceRepo:         r.SourceRepo,
		StartedAt:          r.StartedAt,
		Status:             status,
		TargetRepo:         r.TargetRepo,
	}
}
