package tender

import (
	"context"

	domtender "github.com/kailas-cloud/tenderiq/internal/domain/tender"
)

// Repository defines the storage contract for tenders.
type Repository interface {
	Upsert(ctx context.Context, t *domtender.Tender) (created bool, err error)
	UpsertMany(ctx context.Context, tenders []domtender.Tender) error
	Get(ctx context.Context, id string) (domtender.Tender, error)
	List(ctx context.Context) ([]domtender.Tender, error)
	Delete(ctx context.Context, id string) error
}
