// Package synopsis manages the bid synopsis prepared for each tender.
package synopsis

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/tenderiq/internal/domain"
	domsyn "github.com/kailas-cloud/tenderiq/internal/domain/synopsis"
)

// Service saves and loads bid synopses.
type Service struct {
	repo    Repository
	tenders TenderReader
	logger  *zap.Logger
	now     func() time.Time
}

// New creates a synopsis service.
func New(repo Repository, tenders TenderReader, logger *zap.Logger) *Service {
	return &Service{repo: repo, tenders: tenders, logger: logger, now: time.Now}
}

// WithClock overrides the clock used to stamp saved synopses.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// Save stores the payload for a tender, stamped with the server time.
func (s *Service) Save(ctx context.Context, tenderID string, content []byte) (domsyn.Synopsis, error) {
	if _, err := s.tenders.Get(ctx, tenderID); err != nil {
		return domsyn.Synopsis{}, fmt.Errorf("get tender: %w", err)
	}

	syn, err := domsyn.New(tenderID, content, s.now())
	if err != nil {
		return domsyn.Synopsis{}, fmt.Errorf("%w: %w", domain.ErrInvalidSynopsis, err)
	}
	if err := s.repo.Save(ctx, &syn); err != nil {
		return domsyn.Synopsis{}, fmt.Errorf("save synopsis: %w", err)
	}

	s.logger.Info("Bid synopsis saved",
		zap.String("tender_id", tenderID),
		zap.Int("size", len(content)),
	)
	return syn, nil
}

// Load returns the saved synopsis of a tender.
func (s *Service) Load(ctx context.Context, tenderID string) (domsyn.Synopsis, error) {
	syn, err := s.repo.Load(ctx, tenderID)
	if err != nil {
		return domsyn.Synopsis{}, fmt.Errorf("load synopsis: %w", err)
	}
	return syn, nil
}

// Delete removes the synopsis of a tender.
func (s *Service) Delete(ctx context.Context, tenderID string) error {
	if err := s.repo.Delete(ctx, tenderID); err != nil {
		return fmt.Errorf("delete synopsis: %w", err)
	}
	return nil
}

// Export renders the synopsis as a PDF. Not supported yet.
func (s *Service) Export(_ context.Context, _ string) ([]byte, error) {
	return nil, domain.ErrNotImplemented
}
