package synopsis

import (
	"context"

	domsyn "github.com/kailas-cloud/tenderiq/internal/domain/synopsis"
	"github.com/kailas-cloud/tenderiq/internal/domain/tender"
)

// Repository defines the storage contract for bid synopses.
type Repository interface {
	Save(ctx context.Context, s *domsyn.Synopsis) error
	Load(ctx context.Context, tenderID string) (domsyn.Synopsis, error)
	Delete(ctx context.Context, tenderID string) error
}

// TenderReader checks that the tender exists.
type TenderReader interface {
	Get(ctx context.Context, id string) (tender.Tender, error)
}
