package models

import (
	"time"
)

// CartSnapshotRecord mirrors a cart store's persisted snapshot into the
// database, keyed by the session's cart namespace. Data holds the raw
// JSON snapshot; the schema of that JSON belongs to the store package.
type CartSnapshotRecord struct {
	Namespace string `gorm:"size:64;not null;uniqueIndex;primary_key"`
	Data      []byte `gorm:"type:mediumblob;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CartSnapshotRecord) TableName() string {
	return "cart_snapshots"
}
