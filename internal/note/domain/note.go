package domain

import "time"

// DefaultTag is applied when a note is created without a tag.
const DefaultTag = "General"

// Note is a user-owned text record.
type Note struct {
	ID          string    `json:"_id" gorm:"primaryKey"`
	UserID      string    `json:"user" gorm:"index;not null"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"not null"`
	Tag         string    `json:"tag" gorm:"default:General"`
	Date        time.Time `json:"date" gorm:"index"`
	UpdatedAt   time.Time `json:"-"`
}

// OwnedBy reports whether userID is the note's owner.
func (n *Note) OwnedBy(userID string) bool {
	return n.UserID == userID
}
