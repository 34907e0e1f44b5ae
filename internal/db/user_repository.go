package db

import (
	"time"

	"pickaname/internal/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) FindByID(userID uint) (models.User, error) {
	var user models.User
	if err := repo.database.First(&user, userID).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

// FindByUsername expects an already lowercased username.
func (repo *UserRepository) FindByUsername(username string) (models.User, error) {
	var user models.User
	if err := repo.database.Where("username = ?", username).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) Create(user *models.User) error {
	return repo.database.Create(user).Error
}

// SetSessionToken overwrites the stored token, its expiration and the login
// timestamp in a single statement, so a new login atomically invalidates any
// previous session's token.
func (repo *UserRepository) SetSessionToken(userID uint, token string, expiration time.Time, lastLogin time.Time) error {
	return repo.database.Model(&models.User{}).Where("user_id = ?", userID).Updates(map[string]any{
		"session_token":      token,
		"session_expiration": expiration,
		"last_login":         lastLogin,
	}).Error
}

// ClearSessionToken nulls both session columns together.
func (repo *UserRepository) ClearSessionToken(userID uint) error {
	return repo.database.Model(&models.User{}).Where("user_id = ?", userID).Updates(map[string]any{
		"session_token":      nil,
		"session_expiration": nil,
	}).Error
}

func (repo *UserRepository) UpdatePassword(userID uint, passwordHash string) error {
	return repo.database.Model(&models.User{}).
		Where("user_id = ?", userID).
		Update("password", passwordHash).Error
}

// DeleteAccount removes the user together with group links, likes and
// dislikes, then garbage-collects groups left without members.
func (repo *UserRepository) DeleteAccount(userID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.GroupLink{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserLiked{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserDisliked{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.User{}, userID).Error; err != nil {
			return err
		}
		return tx.Exec(`
DELETE FROM groups
WHERE group_id NOT IN (SELECT group_id FROM link_users)`).Error
	})
}
