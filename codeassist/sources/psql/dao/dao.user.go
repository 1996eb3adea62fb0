package dao

import (
	"codeassist/codeassist/sources/psql/models"
	"context"

	"gorm.io/gorm"
)

type UserDAO struct {
	DB *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{DB: db}
}

// CreateUser inserts a new user. The unique indexes on username and api_key
// surface duplicates as a constraint error from the driver.
func (dao *UserDAO) CreateUser(ctx context.Context, username, apiKey string) (*models.User, error) {
	user := models.User{
		ID:        newID(),
		Username:  username,
		APIKey:    apiKey,
		CreatedAt: nowUTC(),
	}
	err := dao.DB.WithContext(ctx).Create(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (dao *UserDAO) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := dao.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (dao *UserDAO) GetUserByAPIKey(ctx context.Context, apiKey string) (*models.User, error) {
	var user models.User
	err := dao.DB.WithContext(ctx).Where("api_key = ?", apiKey).First(&user).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByCredentials matches the exact (username, api_key) pair only.
func (dao *UserDAO) GetUserByCredentials(ctx context.Context, username, apiKey string) (*models.User, error) {
	var user models.User
	err := dao.DB.WithContext(ctx).
		Where("username = ? AND api_key = ?", username, apiKey).
		First(&user).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
