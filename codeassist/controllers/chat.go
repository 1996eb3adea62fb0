package controllers

import (
	"codeassist/codeassist/services/agent"
	"codeassist/codeassist/sources/psql/dao"
	"codeassist/codeassist/sources/psql/models"
	"codeassist/codeassist/sources/storage"
	"codeassist/codeassist/utils/logging"
	"codeassist/codeassist/utils/types"
	"context"
	"strings"

	"go.uber.org/zap"
)

// MaxContextFileBytes is the per-file ceiling for prompt context. Larger
// uploads stay listed but are never fed to the agent.
const MaxContextFileBytes = 500_000

type ChatController struct {
	userDAO    *dao.UserDAO
	sessionDAO *dao.SessionDAO
	messageDAO *dao.MessageDAO
	fileDAO    *dao.SessionFileDAO
	store      *storage.LocalStore
	agent      agent.Streamer
}

func NewChatController(
	userDAO *dao.UserDAO,
	sessionDAO *dao.SessionDAO,
	messageDAO *dao.MessageDAO,
	fileDAO *dao.SessionFileDAO,
	store *storage.LocalStore,
	streamer agent.Streamer,
) *ChatController {
	return &ChatController{
		userDAO:    userDAO,
		sessionDAO: sessionDAO,
		messageDAO: messageDAO,
		fileDAO:    fileDAO,
		store:      store,
		agent:      streamer,
	}
}

// Stream runs one chat turn. The returned channel emits token events followed
// by exactly one done or error event, then closes. The user's message is
// persisted before generation starts; the assistant's reply is persisted only
// on success, so a failed generation leaves an orphaned user turn.
func (c *ChatController) Stream(ctx context.Context, req types.ChatRequest) (<-chan types.StreamEvent, error) {
	user, err := c.userDAO.GetUserByAPIKey(ctx, req.APIKey)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidAPIKey
	}

	if _, err := authorizeSession(ctx, c.sessionDAO, user.ID, req.SessionID); err != nil {
		return nil, err
	}

	// Context is assembled before the new user turn is recorded, so history
	// excludes the incoming message.
	history, err := c.messageDAO.GetSessionMessages(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}
	files, err := c.fileDAO.GetSessionFiles(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}
	fileContext := c.buildFileContext(files)

	if _, err := c.messageDAO.AddMessage(ctx, req.SessionID, "user", req.Message); err != nil {
		return nil, err
	}

	// Once generation starts it runs to completion even if the client goes
	// away; the transcript write must not be lost to a dropped connection.
	genCtx := context.WithoutCancel(ctx)

	events := make(chan types.StreamEvent)
	go func() {
		defer close(events)

		tokens, errs := c.agent.StreamResponse(genCtx, agent.Request{
			Message:     req.Message,
			History:     history,
			FileContext: fileContext,
			Username:    user.Username,
		})

		var full strings.Builder
		for tok := range tokens {
			full.WriteString(tok)
			events <- types.StreamEvent{Type: "token", Content: tok}
		}

		if err := <-errs; err != nil {
			logging.ErrorLogger.Error("generation failed",
				zap.String("session_id", req.SessionID), zap.Error(err))
			events <- types.StreamEvent{Type: "error", Content: err.Error()}
			return
		}

		if _, err := c.messageDAO.AddMessage(genCtx, req.SessionID, "assistant", full.String()); err != nil {
			logging.ErrorLogger.Error("assistant message persist failed",
				zap.String("session_id", req.SessionID), zap.Error(err))
			events <- types.StreamEvent{Type: "error", Content: err.Error()}
			return
		}

		events <- types.StreamEvent{Type: "done", Content: full.String()}
	}()

	return events, nil
}

// buildFileContext concatenates every readable session file under the size
// ceiling into one labeled blob. Oversized or unreadable files are skipped.
func (c *ChatController) buildFileContext(files []models.SessionFile) string {
	var b strings.Builder
	for _, f := range files {
		text, ok := c.store.ReadText(f.Path, MaxContextFileBytes)
		if !ok {
			continue
		}
		b.WriteString("\n\n--- File: " + f.Filename + " ---\n")
		b.WriteString(text)
	}
	return b.String()
}
