package models

import "time"

// SessionModel represents the database persistence model for sessions.
// SessionID is the opaque identifier exposed to clients; the numeric primary
// key never leaves the database layer. Rows are soft-revoked, never deleted.
type SessionModel struct {
	ID           uint   `gorm:"primarykey"`
	SessionID    string `gorm:"size:64;uniqueIndex;not null"`
	UserID       uint   `gorm:"not null;index"`
	AccessToken  string `gorm:"size:1024;index:idx_sessions_access_token,length:255"`
	RefreshToken *string `gorm:"size:1024"`
	DeviceType   string `gorm:"size:20"`
	DeviceInfo   string `gorm:"size:100"`
	BrowserInfo  string `gorm:"size:50"`
	Platform     string `gorm:"size:50"`
	IPAddress    string `gorm:"size:45"`
	UserAgent    string `gorm:"size:512"`
	IsActive     bool   `gorm:"not null;default:true;index"`
	LastActivity time.Time `gorm:"not null"`
	LoginTime    time.Time `gorm:"not null"`
	LogoutTime   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (SessionModel) TableName() string {
	return "sessions"
}
