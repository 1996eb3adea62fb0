package models

import "time"

// SessionFile is one uploaded file reference. (session_id, filename) is unique,
// so re-uploading a name replaces the path and timestamp.
type SessionFile struct {
	ID         string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	SessionID  string    `json:"session_id" gorm:"type:varchar(36);uniqueIndex:idx_session_files_name,priority:1;not null"`
	Session    Session   `json:"-" gorm:"foreignKey:SessionID;references:ID;constraint:OnDelete:CASCADE"`
	Filename   string    `json:"filename" gorm:"type:varchar(255);uniqueIndex:idx_session_files_name,priority:2;not null"`
	Path       string    `json:"path" gorm:"type:varchar(512);not null"`
	UploadedAt time.Time `json:"uploaded_at" gorm:"not null"`
}
