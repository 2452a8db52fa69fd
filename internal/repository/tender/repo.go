package tender

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/kailas-cloud/tenderiq/internal/db"
	"github.com/kailas-cloud/tenderiq/internal/domain"
	domtender "github.com/kailas-cloud/tenderiq/internal/domain/tender"
)

// store is the consumer interface for tenders (ISP).
type store interface {
	PutRecords(ctx context.Context, records []db.Record) error
	GetRecords(ctx context.Context, keys []string) ([]map[string]string, error)
	RecordKeys(ctx context.Context, pattern string) ([]string, error)
	DeleteRecord(ctx context.Context, key string) (bool, error)
}

// Repo implements usecase/tender.Repository.
type Repo struct {
	store  store
	prefix string
	now    func() time.Time
}

// New creates a tender repository. Keys are "<prefix>tender:<id>".
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix, now: time.Now}
}

// Upsert creates or replaces a tender. Returns true if created.
// A replaced tender keeps its position in List.
func (r *Repo) Upsert(ctx context.Context, t *domtender.Tender) (bool, error) {
	seqs, err := r.put(ctx, []domtender.Tender{*t})
	if err != nil {
		return false, err
	}
	return seqs[0], nil
}

// UpsertMany stores tenders in a single pipeline. New tenders are listed in slice order,
// after any tender stored earlier; tenders already stored keep their position.
func (r *Repo) UpsertMany(ctx context.Context, tenders []domtender.Tender) error {
	if len(tenders) == 0 {
		return nil
	}
	_, err := r.put(ctx, tenders)
	return err
}

// put writes tenders, reusing the seq of those already stored. created[i]
// reports whether tenders[i] was new.
func (r *Repo) put(ctx context.Context, tenders []domtender.Tender) (created []bool, err error) {
	keys := make([]string, len(tenders))
	for i := range tenders {
		keys[i] = r.key(tenders[i].ID())
	}
	existing, err := r.store.GetRecords(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("read stored tenders: %w", err)
	}

	base := r.now().UnixNano()
	created = make([]bool, len(tenders))
	records := make([]db.Record, len(tenders))
	for i := range tenders {
		seq := base + int64(i)
		created[i] = true
		if i < len(existing) && len(existing[i]) > 0 {
			created[i] = false
			if prev, perr := strconv.ParseInt(existing[i][fieldSeq], 10, 64); perr == nil {
				seq = prev
			}
		}
		records[i] = db.Record{Key: keys[i], Fields: tenderToHash(&tenders[i], seq)}
	}

	if err := r.store.PutRecords(ctx, records); err != nil {
		return nil, fmt.Errorf("write tenders: %w", err)
	}
	return created, nil
}

// Get returns a tender by ID.
func (r *Repo) Get(ctx context.Context, id string) (domtender.Tender, error) {
	res, err := r.store.GetRecords(ctx, []string{r.key(id)})
	if err != nil {
		return domtender.Tender{}, fmt.Errorf("read tender %s: %w", id, err)
	}
	if len(res) == 0 || len(res[0]) == 0 {
		return domtender.Tender{}, domain.ErrTenderNotFound
	}

	t, _, err := tenderFromHash(res[0])
	if err != nil {
		return domtender.Tender{}, fmt.Errorf("parse tender %s: %w", id, err)
	}
	return t, nil
}

// List returns all tenders in insertion order.
func (r *Repo) List(ctx context.Context) ([]domtender.Tender, error) {
	keys, err := r.store.RecordKeys(ctx, r.key("*"))
	if err != nil {
		return nil, fmt.Errorf("list tender keys: %w", err)
	}
	if len(keys) == 0 {
		return []domtender.Tender{}, nil
	}

	results, err := r.store.GetRecords(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("read tenders: %w", err)
	}

	type row struct {
		t   domtender.Tender
		seq int64
	}
	rows := make([]row, 0, len(results))
	for i, m := range results {
		// Deleted between listing and reading.
		if len(m) == 0 {
			continue
		}
		t, seq, err := tenderFromHash(m)
		if err != nil {
			return nil, fmt.Errorf("parse tender %s: %w", keys[i], err)
		}
		rows = append(rows, row{t: t, seq: seq})
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })

	tenders := make([]domtender.Tender, len(rows))
	for i := range rows {
		tenders[i] = rows[i].t
	}
	return tenders, nil
}

// Delete removes a tender.
func (r *Repo) Delete(ctx context.Context, id string) error {
	existed, err := r.store.DeleteRecord(ctx, r.key(id))
	if err != nil {
		return fmt.Errorf("delete tender %s: %w", id, err)
	}
	if !existed {
		return domain.ErrTenderNotFound
	}
	return nil
}

func (r *Repo) key(id string) string {
	return r.prefix + "tender:" + id
}
