package dao

import (
	"codeassist/codeassist/sources/psql/models"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionFileDAO struct {
	DB *gorm.DB
}

func NewSessionFileDAO(db *gorm.DB) *SessionFileDAO {
	return &SessionFileDAO{DB: db}
}

// AddSessionFile upserts on (session_id, filename): last write wins.
func (dao *SessionFileDAO) AddSessionFile(ctx context.Context, sessionID, filename, path string) error {
	file := models.SessionFile{
		ID:         newID(),
		SessionID:  sessionID,
		Filename:   filename,
		Path:       path,
		UploadedAt: nowUTC(),
	}
	return dao.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}, {Name: "filename"}},
			DoUpdates: clause.AssignmentColumns([]string{"path", "uploaded_at"}),
		}).
		Create(&file).Error
}

func (dao *SessionFileDAO) GetSessionFiles(ctx context.Context, sessionID string) ([]models.SessionFile, error) {
	var files []models.SessionFile
	err := dao.DB.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("uploaded_at ASC").
		Find(&files).Error
	if err != nil {
		return nil, err
	}
	return files, nil
}

// RemoveSessionFile deletes the record only; the stored bytes are the
// caller's responsibility.
func (dao *SessionFileDAO) RemoveSessionFile(ctx context.Context, sessionID, filename string) error {
	return dao.DB.WithContext(ctx).
		Where("session_id = ? AND filename = ?", sessionID, filename).
		Delete(&models.SessionFile{}).Error
}
