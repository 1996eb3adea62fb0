package dao

import (
	"codeassist/codeassist/sources/psql/models"
	"context"

	"gorm.io/gorm"
)

type MessageDAO struct {
	DB *gorm.DB
}

func NewMessageDAO(db *gorm.DB) *MessageDAO {
	return &MessageDAO{DB: db}
}

// AddMessage appends a message and bumps the session's updated_at in one
// transaction, so a session can never be newer than its last message.
func (dao *MessageDAO) AddMessage(ctx context.Context, sessionID, role, content string) (*models.Message, error) {
	now := nowUTC()
	msg := models.Message{
		ID:        newID(),
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		CreatedAt: now,
	}
	err := dao.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&msg).Error; err != nil {
			return err
		}
		return tx.Model(&models.Session{}).
			Where("id = ?", sessionID).
			Update("updated_at", now).Error
	})
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (dao *MessageDAO) GetSessionMessages(ctx context.Context, sessionID string) ([]models.Message, error) {
	var messages []models.Message
	err := dao.DB.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
