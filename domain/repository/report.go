package repository

import (
	"context"

	"leadbridge/domain/model"
)

// IReportStore keeps finished batches around long enough for their reports to be downloaded.
type IReportStore interface {
	Save(ctx context.Context, batch *model.Batch) error
	// Get returns model.ErrBatchNotFound when the id is unknown or expired.
	Get(ctx context.Context, id string) (*model.Batch, error)
}

type IErrorLog interface {
	Append(section, message string) model.ErrorLogEntry
	Entries() []model.ErrorLogEntry
}
