package db

import (
	"errors"

	"pickaname/internal/models"

	"gorm.io/gorm"
)

type GroupRepository struct {
	database *gorm.DB
}

func NewGroupRepository(database *gorm.DB) *GroupRepository {
	return &GroupRepository{database: database}
}

func (repo *GroupRepository) CodeExists(code string) (bool, error) {
	var matched int64
	err := repo.database.Model(&models.Group{}).
		Where("group_code = ?", code).
		Count(&matched).Error
	if err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *GroupRepository) FindByCode(code string) (models.Group, bool, error) {
	var group models.Group
	err := repo.database.Where("group_code = ?", code).First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Group{}, false, nil
	}
	if err != nil {
		return models.Group{}, false, err
	}
	return group, true, nil
}

func (repo *GroupRepository) Create(code string) (models.Group, error) {
	group := models.Group{GroupCode: code}
	if err := repo.database.Create(&group).Error; err != nil {
		return models.Group{}, err
	}
	return group, nil
}

func (repo *GroupRepository) CountGroupsOf(userID uint) (int64, error) {
	var count int64
	err := repo.database.Model(&models.GroupLink{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (repo *GroupRepository) CountMembers(groupID uint) (int64, error) {
	var count int64
	err := repo.database.Model(&models.GroupLink{}).
		Where("group_id = ?", groupID).
		Count(&count).Error
	return count, err
}

func (repo *GroupRepository) IsMember(userID uint, groupID uint) (bool, error) {
	var matched int64
	err := repo.database.Model(&models.GroupLink{}).
		Where("user_id = ? AND group_id = ?", userID, groupID).
		Count(&matched).Error
	if err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *GroupRepository) AddMember(userID uint, groupID uint) error {
	return repo.database.Create(&models.GroupLink{UserID: userID, GroupID: groupID}).Error
}

func (repo *GroupRepository) RemoveMember(userID uint, groupID uint) error {
	return repo.database.
		Where("user_id = ? AND group_id = ?", userID, groupID).
		Delete(&models.GroupLink{}).Error
}

// DeleteWithLinks drops the group and every membership link in one
// transaction; used when the last (or only) member tears the group down.
func (repo *GroupRepository) DeleteWithLinks(groupID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", groupID).Delete(&models.GroupLink{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Group{}, groupID).Error
	})
}

type groupCodeRow struct {
	GroupCode string `gorm:"column:group_code"`
	Partner   string `gorm:"column:partner"`
}

// GroupCodes maps each of the user's group codes to the partner's username,
// or to the empty string while the user is still alone in the group.
func (repo *GroupRepository) GroupCodes(userID uint) (map[string]string, error) {
	rows := make([]groupCodeRow, 0)
	err := repo.database.Raw(`
SELECT g.group_code AS group_code, COALESCE(u.username, '') AS partner
FROM link_users AS lu_self
JOIN groups AS g ON g.group_id = lu_self.group_id
LEFT JOIN link_users AS lu_other
  ON lu_other.group_id = lu_self.group_id AND lu_other.user_id <> lu_self.user_id
LEFT JOIN users AS u ON u.user_id = lu_other.user_id
WHERE lu_self.user_id = ?
ORDER BY g.group_code, u.username`, userID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	codes := make(map[string]string, len(rows))
	for _, row := range rows {
		codes[row.GroupCode] = row.Partner
	}
	return codes, nil
}

type GroupLikedRow struct {
	GroupCode string `gorm:"column:group_code"`
	NameID    uint   `gorm:"column:name_id"`
	Name      string `gorm:"column:name"`
}

// GroupLiked lists the names liked by every member of each of the user's
// full groups; groups with a single member yield nothing.
func (repo *GroupRepository) GroupLiked(userID uint) ([]GroupLikedRow, error) {
	rows := make([]GroupLikedRow, 0)
	err := repo.database.Raw(`
SELECT g.group_code AS group_code, n.id AS name_id, n.name AS name
FROM link_users lu
JOIN user_liked ul ON ul.user_id = lu.user_id
JOIN groups g ON g.group_id = lu.group_id
JOIN names n ON n.id = ul.name_id
WHERE lu.group_id IN (SELECT group_id FROM link_users WHERE user_id = ?)
GROUP BY lu.group_id, ul.name_id
HAVING COUNT(DISTINCT lu.user_id) = (SELECT COUNT(*) FROM link_users lu2 WHERE lu2.group_id = lu.group_id)
   AND (SELECT COUNT(*) FROM link_users lu2 WHERE lu2.group_id = lu.group_id) > 1
ORDER BY g.group_code, n.name`, userID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// PartnerLikes returns catalog rows for names the partner in the given group
// has liked and the user has not rated either way yet.
func (repo *GroupRepository) PartnerLikes(userID uint, groupCode string) ([]NameRow, error) {
	rows := make([]NameRow, 0)
	err := repo.database.Raw(`
SELECT names.id AS id, names.name AS name, names.gender AS gender,
       countries.country AS country, population.pop AS pop
FROM user_liked ul
JOIN link_users lu_partner ON lu_partner.user_id = ul.user_id
JOIN groups g ON g.group_id = lu_partner.group_id
JOIN names ON names.id = ul.name_id
JOIN population ON population.name_id = names.id
JOIN countries ON countries.id = population.country_id
WHERE g.group_code = ?
  AND ul.user_id <> ?
  AND lu_partner.group_id IN (SELECT group_id FROM link_users WHERE user_id = ?)
  AND ul.name_id NOT IN (SELECT name_id FROM user_liked WHERE user_id = ?)
  AND ul.name_id NOT IN (SELECT name_id FROM user_disliked WHERE user_id = ?)`,
		groupCode, userID, userID, userID, userID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
