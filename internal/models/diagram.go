package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Diagram is a stored class diagram. Snapshot holds the raw
// classes+relations document exactly as the canvas submitted it; the
// server never rewrites it, so a reload round-trips byte for byte.
type Diagram struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Snapshot   json.RawMessage `json:"snapshot"`
	ShareToken *uuid.UUID      `json:"share_token,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (d *Diagram) Prepare() {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	now := time.Now().UTC()
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	d.UpdatedAt = now
}

// Shared reports whether a share token has been issued.
func (d *Diagram) Shared() bool {
	return d.ShareToken != nil && *d.ShareToken != uuid.Nil
}
