package synopsis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/tenderiq/internal/db"
	"github.com/kailas-cloud/tenderiq/internal/domain"
	domsyn "github.com/kailas-cloud/tenderiq/internal/domain/synopsis"
)

// store is the consumer interface for bid synopses (ISP).
type store interface {
	GetDocument(ctx context.Context, key string) ([]byte, error)
	PutDocument(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteDocument(ctx context.Context, key string) error
}

// record is the stored form of a synopsis.
type record struct {
	TenderID  string          `json:"tender_id"`
	Content   json.RawMessage `json:"content"`
	Timestamp time.Time       `json:"timestamp"`
}

// Repo stores bid synopses under "<prefix>bid-synopsis-<tenderID>".
type Repo struct {
	store  store
	prefix string
}

// New creates a synopsis repository.
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

// Save stores a synopsis, replacing any previous one. Synopses do not expire.
func (r *Repo) Save(ctx context.Context, s *domsyn.Synopsis) error {
	data, err := json.Marshal(record{TenderID: s.TenderID, Content: s.Content, Timestamp: s.Timestamp})
	if err != nil {
		return fmt.Errorf("marshal synopsis: %w", err)
	}
	if err := r.store.PutDocument(ctx, r.key(s.TenderID), data, 0); err != nil {
		return fmt.Errorf("set synopsis %s: %w", s.TenderID, err)
	}
	return nil
}

// Load returns the synopsis of a tender.
func (r *Repo) Load(ctx context.Context, tenderID string) (domsyn.Synopsis, error) {
	data, err := r.store.GetDocument(ctx, r.key(tenderID))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domsyn.Synopsis{}, domain.ErrSynopsisNotFound
		}
		return domsyn.Synopsis{}, fmt.Errorf("get synopsis %s: %w", tenderID, err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return domsyn.Synopsis{}, fmt.Errorf("unmarshal synopsis %s: %w", tenderID, err)
	}
	return domsyn.Synopsis{TenderID: rec.TenderID, Content: rec.Content, Timestamp: rec.Timestamp}, nil
}

// Delete removes the synopsis of a tender. Deleting a missing synopsis is not an error.
func (r *Repo) Delete(ctx context.Context, tenderID string) error {
	if err := r.store.DeleteDocument(ctx, r.key(tenderID)); err != nil {
		return fmt.Errorf("del synopsis %s: %w", tenderID, err)
	}
	return nil
}

func (r *Repo) key(tenderID string) string {
	return r.prefix + "bid-synopsis-" + tenderID
}
