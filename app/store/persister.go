package store

import (
	"encoding/json"
	"time"

	"github.com/riiqx/storefront/app/models"
	"github.com/shopspring/decimal"
)

// Snapshot is the persisted form of a cart: exactly the line items and
// the applied discount. The open/closed UI flag is transient and never
// part of a snapshot.
type Snapshot struct {
	Items    []CartItem
	Discount *models.PromoCode
}

// snapshotPromo is the wire form of the applied promo. The PromoCode
// model hides Active and the validity window from API JSON, so the
// snapshot codec spells every field out: a rehydrated promo must still
// pass Usable when checkout re-validates it.
type snapshotPromo struct {
	ID          string          `json:"id,omitempty"`
	Code        string          `json:"code"`
	Kind        string          `json:"kind"`
	Value       decimal.Decimal `json:"value"`
	MinSubtotal decimal.Decimal `json:"minSubtotal"`
	Description string          `json:"description,omitempty"`
	Active      bool            `json:"active"`
	StartsAt    *time.Time      `json:"startsAt,omitempty"`
	EndsAt      *time.Time      `json:"endsAt,omitempty"`
}

type snapshotJSON struct {
	Items    []CartItem     `json:"items"`
	Discount *snapshotPromo `json:"discount"`
}

func (s Snapshot) MarshalJSON() ([]byte, error) {
	out := snapshotJSON{Items: s.Items}
	if out.Items == nil {
		out.Items = []CartItem{}
	}
	if s.Discount != nil {
		out.Discount = &snapshotPromo{
			ID:          s.Discount.ID,
			Code:        s.Discount.Code,
			Kind:        s.Discount.Kind,
			Value:       s.Discount.Value,
			MinSubtotal: s.Discount.MinSubtotal,
			Description: s.Discount.Description,
			Active:      s.Discount.Active,
			StartsAt:    s.Discount.StartsAt,
			EndsAt:      s.Discount.EndsAt,
		}
	}
	return json.Marshal(out)
}

func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var in snapshotJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	s.Items = in.Items
	s.Discount = nil
	if in.Discount != nil {
		s.Discount = &models.PromoCode{
			ID:          in.Discount.ID,
			Code:        in.Discount.Code,
			Kind:        in.Discount.Kind,
			Value:       in.Discount.Value,
			MinSubtotal: in.Discount.MinSubtotal,
			Description: in.Discount.Description,
			Active:      in.Discount.Active,
			StartsAt:    in.Discount.StartsAt,
			EndsAt:      in.Discount.EndsAt,
		}
	}
	return nil
}

// Persister mirrors cart snapshots to durable storage. Save is called
// write-through after every mutating cart operation; Load is called
// once when a store is constructed.
//
// Implementations must be best-effort: a failed Save must not affect
// the in-memory cart, and Load must report ok=false (not an error) for
// a missing snapshot.
type Persister interface {
	Save(snap Snapshot) error
	Load() (Snapshot, bool, error)
}

// NopPersister keeps nothing. Used for tests and sessions that opted
// out of cart persistence.
type NopPersister struct{}

func (NopPersister) Save(Snapshot) error           { return nil }
func (NopPersister) Load() (Snapshot, bool, error) { return Snapshot{}, false, nil }
