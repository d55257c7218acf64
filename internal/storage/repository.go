package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

type Repository interface {
	GetSnapshot(ctx context.Context, key string) (Snapshot, error)
	PutSnapshot(ctx context.Context, in Snapshot) error
	DeleteSnapshot(ctx context.Context, key string) error
	ListSnapshots(ctx context.Context, filter SnapshotListFilter) ([]Snapshot, error)

	CreateCompletion(ctx context.Context, in Completion) error
	ListCompletions(ctx context.Context, filter CompletionListFilter) ([]Completion, error)
	CountCompletions(ctx context.Context, filter CompletionListFilter) (map[string]int, error)
}
