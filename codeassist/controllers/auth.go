package controllers

import (
	"codeassist/codeassist/sources/psql/dao"
	"codeassist/codeassist/utils/logging"
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthController struct {
	userDAO *dao.UserDAO
}

func NewAuthController(userDAO *dao.UserDAO) *AuthController {
	return &AuthController{userDAO: userDAO}
}

// Register creates a user and mints their API key. The key is returned here
// and never again; there is no recovery flow.
func (c *AuthController) Register(ctx context.Context, username string) (map[string]interface{}, error) {
	existing, err := c.userDAO.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	apiKey := strings.ReplaceAll(uuid.New().String(), "-", "")
	user, err := c.userDAO.CreateUser(ctx, username, apiKey)
	if err != nil {
		return nil, err
	}

	logging.AppLogger.Info("user registered", zap.String("username", username))
	return map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
		"api_key":  apiKey,
		"message":  "Save your API key – it won't be shown again!",
	}, nil
}

func (c *AuthController) Login(ctx context.Context, username, apiKey string) (map[string]interface{}, error) {
	user, err := c.userDAO.GetUserByCredentials(ctx, username, apiKey)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	return map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
		"api_key":  apiKey,
	}, nil
}
