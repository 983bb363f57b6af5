package models

import (
	"time"
)

// User represents a registered account. The password column holds a bcrypt
// hash and is excluded from every JSON projection.
type User struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	FullName  string    `gorm:"size:255;not null" json:"fullName"`
	Username  string    `gorm:"uniqueIndex;size:255;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Fields    []Field   `gorm:"foreignKey:UserID" json:"fields"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}
