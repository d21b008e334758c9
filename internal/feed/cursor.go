package feed

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrBadCursor is returned when a cursor fails to decode
var ErrBadCursor = errors.New("malformed cursor")

// Cursor marks a position in the (created_at DESC, id DESC) total order.
// It identifies the first row of the next page and is only meaningful
// under the exact filter it was issued for; callers must key stored
// cursors by filter.
type Cursor struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// Encode serializes the cursor into an opaque URL-safe token
func (c Cursor) Encode() string {
	data, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(data)
}

// DecodeCursor parses a token produced by Encode. Anything else is
// rejected with ErrBadCursor rather than guessed at.
func DecodeCursor(raw string) (Cursor, error) {
	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return Cursor{}, ErrBadCursor
	}

	var c Cursor
	if err := json.Unmarshal(data, &c); err != nil {
		return Cursor{}, ErrBadCursor
	}
	if c.ID == uuid.Nil || c.CreatedAt.IsZero() {
		return Cursor{}, ErrBadCursor
	}
	return c, nil
}
