package types

import "time"

// Registered users
type User struct {
	ID           uint64 `gorm:"primaryKey"`
	Username     string `gorm:"size:64;unique;not null"`
	PasswordHash string `gorm:"size:128;not null"`
	Email        string `gorm:"size:256;unique;not null"`
	FullName     string `gorm:"size:128"`
	Status       string `gorm:"size:16;default:active"` // active, inactive
	CreatedAt    time.Time
}

// Submission is one chat exchange: the user's input and the verdict
// (or degradation message) the pipeline returned for it.
type Submission struct {
	ID           uint64 `gorm:"primaryKey"`
	UserID       uint64 `gorm:"index;not null"`
	RequestID    string `gorm:"size:36"` // uuid, correlates logs with rows
	InputText    string `gorm:"type:text;not null"`
	ResponseText string `gorm:"type:text"`
	CreatedAt    time.Time
}

// Uploaded media files
type Upload struct {
	ID         uint64 `gorm:"primaryKey"`
	UserID     uint64 `gorm:"index;not null"`
	StoredName string `gorm:"size:128;not null"` // uuid-prefixed name on disk
	Filename   string `gorm:"size:256;not null"` // original client filename
	CreatedAt  time.Time
}

// Settings
type Setting struct {
	ID    uint8  `gorm:"primaryKey"`
	Name  string `gorm:"size:32;not null"`
	Value string `gorm:"size:256;not null"`
}
