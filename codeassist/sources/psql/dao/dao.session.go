package dao

import (
	"codeassist/codeassist/sources/psql/models"
	"context"

	"gorm.io/gorm"
)

type SessionDAO struct {
	DB *gorm.DB
}

func NewSessionDAO(db *gorm.DB) *SessionDAO {
	return &SessionDAO{DB: db}
}

func (dao *SessionDAO) CreateSession(ctx context.Context, userID, name string) (*models.Session, error) {
	now := nowUTC()
	session := models.Session{
		ID:        newID(),
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := dao.DB.WithContext(ctx).Create(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (dao *SessionDAO) GetSession(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	err := dao.DB.WithContext(ctx).Where("id = ?", id).First(&session).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// GetUserSessions lists a user's sessions, most recently active first.
func (dao *SessionDAO) GetUserSessions(ctx context.Context, userID string) ([]models.Session, error) {
	var sessions []models.Session
	err := dao.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// DeleteSession removes the row; messages and files go with it via the
// cascading foreign keys. On-disk uploads are the caller's cleanup.
func (dao *SessionDAO) DeleteSession(ctx context.Context, id string) error {
	return dao.DB.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Session{}).Error
}

func (dao *SessionDAO) TouchSession(ctx context.Context, id string) error {
	return dao.DB.WithContext(ctx).
		Model(&models.Session{}).
		Where("id = ?", id).
		Update("updated_at", nowUTC()).Error
}
