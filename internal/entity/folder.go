package entity

import (
	"strings"
	"time"
)

// Folder is a named grouping of cards. Names are unique per user,
// case-insensitively.
type Folder struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Icon      string `json:"icon,omitempty"`
	CreatedAt int64  `json:"created_at"` // epoch ms
}

// NameEquals compares folder names the way uniqueness is enforced.
func (f *Folder) NameEquals(name string) bool {
	return strings.EqualFold(strings.TrimSpace(f.Name), strings.TrimSpace(name))
}

// Normalize ensures defaults & constraints before persistence.
func (f *Folder) Normalize(now time.Time) {
	f.Name = strings.TrimSpace(f.Name)
	if f.CreatedAt == 0 {
		f.CreatedAt = now.UnixMilli()
	}
}
