package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

type Repository interface {
	SaveSnapshot(ctx context.Context, in GridSnapshot) error
	GetSnapshot(ctx context.Context, name string) (GridSnapshot, error)
	DeleteSnapshot(ctx context.Context, name string) error

	RecordSelection(ctx context.Context, in Selection) (int64, error)
	ListSelections(ctx context.Context, filter SelectionListFilter) ([]Selection, error)
	DeleteSelections(ctx context.Context) (int64, error)
}
