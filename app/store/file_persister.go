package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// FilePersister keeps the snapshot as a JSON file under a base
// directory, one file per cart namespace. It is the device-local
// storage adapter: single owner, no cross-process coordination.
type FilePersister struct {
	baseDir   string
	namespace string
}

func NewFilePersister(baseDir, namespace string) *FilePersister {
	return &FilePersister{baseDir: baseDir, namespace: namespace}
}

func (f *FilePersister) path() string {
	return filepath.Join(f.baseDir, "cart_"+f.namespace+".json")
}

func (f *FilePersister) Save(snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode cart snapshot: %w", err)
	}

	if err := os.MkdirAll(f.baseDir, 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot dir: %w", err)
	}

	if err := os.WriteFile(f.path(), data, 0o644); err != nil {
		return fmt.Errorf("failed to write cart snapshot: %w", err)
	}
	return nil
}

// Load reads the namespace's snapshot file. A missing file means a
// first run; a corrupt file is treated the same way, after a log line,
// so a bad write can never wedge the cart.
func (f *FilePersister) Load() (Snapshot, bool, error) {
	data, err := os.ReadFile(f.path())
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{}, false, nil
		}
		return Snapshot{}, false, fmt.Errorf("failed to read cart snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		log.Printf("cart store: discarding corrupt snapshot %s: %v", f.path(), err)
		return Snapshot{}, false, nil
	}
	return snap, true, nil
}
