package db

import (
	"pickaname/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PreferenceRepository struct {
	database *gorm.DB
}

func NewPreferenceRepository(database *gorm.DB) *PreferenceRepository {
	return &PreferenceRepository{database: database}
}

// LikedAmong returns which of the given name ids the user has already liked.
func (repo *PreferenceRepository) LikedAmong(userID uint, nameIDs []uint) (map[uint]struct{}, error) {
	return repo.ratedAmong(&models.UserLiked{}, userID, nameIDs)
}

// DislikedAmong returns which of the given name ids the user has already disliked.
func (repo *PreferenceRepository) DislikedAmong(userID uint, nameIDs []uint) (map[uint]struct{}, error) {
	return repo.ratedAmong(&models.UserDisliked{}, userID, nameIDs)
}

func (repo *PreferenceRepository) ratedAmong(model any, userID uint, nameIDs []uint) (map[uint]struct{}, error) {
	if len(nameIDs) == 0 {
		return map[uint]struct{}{}, nil
	}

	ids := make([]uint, 0, len(nameIDs))
	err := repo.database.Model(model).
		Where("user_id = ? AND name_id IN ?", userID, nameIDs).
		Pluck("name_id", &ids).Error
	if err != nil {
		return nil, err
	}

	found := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		found[id] = struct{}{}
	}
	return found, nil
}

func (repo *PreferenceRepository) AddLikes(userID uint, nameIDs []uint) error {
	if len(nameIDs) == 0 {
		return nil
	}
	rows := make([]models.UserLiked, 0, len(nameIDs))
	for _, nameID := range nameIDs {
		rows = append(rows, models.UserLiked{UserID: userID, NameID: nameID})
	}
	return repo.database.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}

func (repo *PreferenceRepository) AddDislikes(userID uint, nameIDs []uint) error {
	if len(nameIDs) == 0 {
		return nil
	}
	rows := make([]models.UserDisliked, 0, len(nameIDs))
	for _, nameID := range nameIDs {
		rows = append(rows, models.UserDisliked{UserID: userID, NameID: nameID})
	}
	return repo.database.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}

func (repo *PreferenceRepository) RemoveLikes(userID uint, nameIDs []uint) error {
	if len(nameIDs) == 0 {
		return nil
	}
	return repo.database.
		Where("user_id = ? AND name_id IN ?", userID, nameIDs).
		Delete(&models.UserLiked{}).Error
}

func (repo *PreferenceRepository) RemoveDislikes(userID uint, nameIDs []uint) error {
	if len(nameIDs) == 0 {
		return nil
	}
	return repo.database.
		Where("user_id = ? AND name_id IN ?", userID, nameIDs).
		Delete(&models.UserDisliked{}).Error
}
