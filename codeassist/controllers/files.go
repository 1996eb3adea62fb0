package controllers

import (
	"codeassist/codeassist/sources/psql/dao"
	"codeassist/codeassist/sources/psql/models"
	"codeassist/codeassist/sources/storage"
	"context"
	"io"
)

type FileController struct {
	sessionDAO *dao.SessionDAO
	fileDAO    *dao.SessionFileDAO
	store      *storage.LocalStore
}

func NewFileController(sessionDAO *dao.SessionDAO, fileDAO *dao.SessionFileDAO, store *storage.LocalStore) *FileController {
	return &FileController{sessionDAO: sessionDAO, fileDAO: fileDAO, store: store}
}

// Upload stores the bytes under the session's upload dir and upserts the file
// record. Note there is no transactional guard spanning the two: a crash after
// the disk write can leave a file the database does not know about.
func (c *FileController) Upload(ctx context.Context, userID, sessionID, filename string, r io.Reader) (map[string]interface{}, error) {
	if _, err := authorizeSession(ctx, c.sessionDAO, userID, sessionID); err != nil {
		return nil, err
	}

	safeName := storage.SafeName(filename)
	path, size, err := c.store.Save(sessionID, safeName, r)
	if err != nil {
		return nil, err
	}
	if err := c.fileDAO.AddSessionFile(ctx, sessionID, safeName, path); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"filename": safeName,
		"size":     size,
		"message":  "File uploaded successfully",
	}, nil
}

func (c *FileController) List(ctx context.Context, userID, sessionID string) ([]models.SessionFile, error) {
	if _, err := authorizeSession(ctx, c.sessionDAO, userID, sessionID); err != nil {
		return nil, err
	}
	files, err := c.fileDAO.GetSessionFiles(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if files == nil {
		files = []models.SessionFile{}
	}
	return files, nil
}

func (c *FileController) Remove(ctx context.Context, userID, sessionID, filename string) error {
	if _, err := authorizeSession(ctx, c.sessionDAO, userID, sessionID); err != nil {
		return err
	}
	if err := c.store.Remove(sessionID, filename); err != nil {
		return err
	}
	return c.fileDAO.RemoveSessionFile(ctx, sessionID, storage.SafeName(filename))
}
