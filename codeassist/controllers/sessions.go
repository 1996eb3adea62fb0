package controllers

import (
	"codeassist/codeassist/sources/psql/dao"
	"codeassist/codeassist/sources/psql/models"
	"codeassist/codeassist/sources/storage"
	"codeassist/codeassist/utils/logging"
	"context"
	"time"

	"go.uber.org/zap"
)

type SessionController struct {
	sessionDAO *dao.SessionDAO
	messageDAO *dao.MessageDAO
	store      *storage.LocalStore
}

func NewSessionController(sessionDAO *dao.SessionDAO, messageDAO *dao.MessageDAO, store *storage.LocalStore) *SessionController {
	return &SessionController{sessionDAO: sessionDAO, messageDAO: messageDAO, store: store}
}

// authorizeSession collapses "no such session" and "someone else's session"
// into ErrSessionNotFound.
func authorizeSession(ctx context.Context, sessionDAO *dao.SessionDAO, userID, sessionID string) (*models.Session, error) {
	session, err := sessionDAO.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.UserID != userID {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (c *SessionController) List(ctx context.Context, userID string) ([]models.Session, error) {
	sessions, err := c.sessionDAO.GetUserSessions(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sessions == nil {
		sessions = []models.Session{}
	}
	return sessions, nil
}

func (c *SessionController) Create(ctx context.Context, userID, name string) (map[string]interface{}, error) {
	if name == "" {
		name = "Session " + time.Now().Format("Jan 02 15:04")
	}
	session, err := c.sessionDAO.CreateSession(ctx, userID, name)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"session_id": session.ID,
		"name":       session.Name,
	}, nil
}

// Delete removes the session row (messages and file rows cascade) and then
// the session's upload directory on disk.
func (c *SessionController) Delete(ctx context.Context, userID, sessionID string) error {
	if _, err := authorizeSession(ctx, c.sessionDAO, userID, sessionID); err != nil {
		return err
	}
	if err := c.sessionDAO.DeleteSession(ctx, sessionID); err != nil {
		return err
	}
	if err := c.store.RemoveSession(sessionID); err != nil {
		logging.ErrorLogger.Error("session upload dir cleanup failed",
			zap.String("session_id", sessionID), zap.Error(err))
	}
	return nil
}

func (c *SessionController) Messages(ctx context.Context, userID, sessionID string) ([]models.Message, error) {
	if _, err := authorizeSession(ctx, c.sessionDAO, userID, sessionID); err != nil {
		return nil, err
	}
	messages, err := c.messageDAO.GetSessionMessages(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []models.Message{}
	}
	return messages, nil
}
