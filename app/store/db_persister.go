package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"
)

// ErrNoSnapshot is returned by SnapshotDB implementations when the
// namespace has no stored snapshot yet.
var ErrNoSnapshot = errors.New("no cart snapshot")

// SnapshotDB is the slice of the database layer the persister needs.
// The repositories package provides the gorm-backed implementation.
type SnapshotDB interface {
	PutSnapshot(ctx context.Context, namespace string, data []byte) error
	GetSnapshot(ctx context.Context, namespace string) ([]byte, error)
}

const dbPersistTimeout = 3 * time.Second

// DBPersister mirrors snapshots into the cart_snapshots table, keyed
// by the session's cart namespace. Writes are bounded by a short
// timeout so a slow database cannot stall a cart mutation for long.
type DBPersister struct {
	db        SnapshotDB
	namespace string
}

func NewDBPersister(db SnapshotDB, namespace string) *DBPersister {
	return &DBPersister{db: db, namespace: namespace}
}

func (p *DBPersister) Save(snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode cart snapshot: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbPersistTimeout)
	defer cancel()

	if err := p.db.PutSnapshot(ctx, p.namespace, data); err != nil {
		return fmt.Errorf("failed to store cart snapshot for %s: %w", p.namespace, err)
	}
	return nil
}

func (p *DBPersister) Load() (Snapshot, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), dbPersistTimeout)
	defer cancel()

	data, err := p.db.GetSnapshot(ctx, p.namespace)
	if err != nil {
		if errors.Is(err, ErrNoSnapshot) {
			return Snapshot{}, false, nil
		}
		return Snapshot{}, false, fmt.Errorf("failed to load cart snapshot for %s: %w", p.namespace, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		log.Printf("cart store: discarding corrupt snapshot for %s: %v", p.namespace, err)
		return Snapshot{}, false, nil
	}
	return snap, true, nil
}
