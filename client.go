package tenderiq

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/tenderiq/internal/db"
	dbRedis "github.com/kailas-cloud/tenderiq/internal/db/redis"
	tenderrepo "github.com/kailas-cloud/tenderiq/internal/repository/tender"
	tenderuc "github.com/kailas-cloud/tenderiq/internal/usecase/tender"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultKeyPrefix        = "tenderiq:"
)

// Client is the tenderiq SDK entry point over a stored tender set.
type Client struct {
	store   db.Store
	tenders *tenderuc.Service
}

// New creates a Client and connects to the database.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("tenderiq: database address required (use WithValkey or WithRedis)")
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("tenderiq: database not ready: %w", err)
	}

	return wireClient(store, cfg), nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "valkey", "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Username: cfg.username,
			Password: cfg.password,
			DB:       cfg.db,
		})
		if err != nil {
			return nil, fmt.Errorf("tenderiq: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("tenderiq: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig) *Client {
	prefix := cfg.keyPrefix
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	svc := tenderuc.New(tenderrepo.New(store, prefix), logger).WithClock(cfg.now)
	return &Client{store: store, tenders: svc}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Import stores tenders, replacing existing ones with the same ID.
func (c *Client) Import(ctx context.Context, tenders []Tender) error {
	if err := c.tenders.Import(ctx, tenders); err != nil {
		return fmt.Errorf("import: %w", err)
	}
	return nil
}

// ImportFile loads a YAML fixture and stores its tenders.
func (c *Client) ImportFile(ctx context.Context, path string) error {
	tenders, err := LoadFixture(path)
	if err != nil {
		return err
	}
	return c.Import(ctx, tenders)
}

// Upsert stores one tender. Returns true if it was created.
func (c *Client) Upsert(ctx context.Context, t Tender) (bool, error) {
	created, err := c.tenders.Upsert(ctx, &t)
	if err != nil {
		return false, fmt.Errorf("upsert: %w", err)
	}
	return created, nil
}

// Get returns a stored tender.
func (c *Client) Get(ctx context.Context, id string) (Tender, error) {
	t, err := c.tenders.Get(ctx, id)
	if err != nil {
		return Tender{}, fmt.Errorf("get: %w", err)
	}
	return t, nil
}

// Delete removes a stored tender.
func (c *Client) Delete(ctx context.Context, id string) error {
	if err := c.tenders.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}

// Tenders returns the stored tenders matching q, in insertion order.
func (c *Client) Tenders(ctx context.Context, q Query) ([]Tender, error) {
	ts, err := c.tenders.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("tenders: %w", err)
	}
	return ts, nil
}

// Categories groups the tenders matching q and returns the default category
// of the whole stored set.
func (c *Client) Categories(ctx context.Context, q Query) (Groups, Selector, error) {
	cat, err := c.tenders.Categories(ctx, q)
	if err != nil {
		return nil, Selector{}, fmt.Errorf("categories: %w", err)
	}
	return cat.Groups, cat.Default, nil
}

// Dates lists the stored analysis days and the label of sel.
func (c *Client) Dates(ctx context.Context, sel DateSelection) ([]DateCount, string, error) {
	idx, err := c.tenders.Dates(ctx, sel)
	if err != nil {
		return nil, "", fmt.Errorf("dates: %w", err)
	}
	return idx.Available, idx.Label, nil
}

// Stats summarizes the tenders matching q.
func (c *Client) Stats(ctx context.Context, q Query) (Stats, error) {
	s, err := c.tenders.Stats(ctx, q)
	if err != nil {
		return Stats{}, fmt.Errorf("stats: %w", err)
	}
	return s, nil
}
