package models

import "time"

// UserModel represents the database persistence model for user accounts.
// The account subsystem owns this table; the auth core reads it and only
// updates password_hash.
type UserModel struct {
	ID           uint   `gorm:"primarykey"`
	Username     string `gorm:"size:100;uniqueIndex;not null"`
	Email        string `gorm:"size:255;uniqueIndex;not null"`
	FirstName    string `gorm:"size:100"`
	MiddleName   string `gorm:"size:100"`
	LastName     string `gorm:"size:100"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         string `gorm:"size:50;not null"`
	IsActive     bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return "users"
}
