package entities

import (
	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Handle   string    `gorm:"uniqueIndex;not null" json:"handle"`
	Name     string    `gorm:"not null" json:"name"`
	Email    string    `gorm:"uniqueIndex;not null" json:"email"`
	Password string    `gorm:"not null" json:"-"`

	Recipes []*Recipe `gorm:"foreignKey:UserID" json:"-"`
	Timestamp
}
