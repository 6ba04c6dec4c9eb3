package certification

import "time"

// Certification is one entry in the user's reorderable certification list.
// Position is its zero-based display index.
type Certification struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Issuer    string    `json:"issuer,omitempty"`
	IssuedAt  *time.Time `json:"issued_at,omitempty"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}
