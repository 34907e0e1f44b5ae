package db

import (
	"gorm.io/gorm"
)

// NameRow is one (name, country) pairing as it comes back from the catalog
// joins; the service layer folds rows into per-name results.
type NameRow struct {
	ID      uint   `gorm:"column:id"`
	Name    string `gorm:"column:name"`
	Gender  string `gorm:"column:gender"`
	Country string `gorm:"column:country"`
	Pop     int    `gorm:"column:pop"`
}

// NameFilter is the search shape after normalization. Zero values mean
// "no constraint"; Genders carries the already expanded notation variants
// (e.g. F plus ?F). RatedBy, when set, removes names the user has already
// liked or disliked.
type NameFilter struct {
	Letter    string
	Anywhere  bool
	Genders   []string
	Countries []string
	RatedBy   *uint
}

type NameRepository struct {
	database *gorm.DB
}

func NewNameRepository(database *gorm.DB) *NameRepository {
	return &NameRepository{database: database}
}

func (repo *NameRepository) catalogQuery() *gorm.DB {
	return repo.database.
		Table("population").
		Select("names.id, names.name, names.gender, countries.country, population.pop").
		Joins("JOIN names ON population.name_id = names.id").
		Joins("JOIN countries ON population.country_id = countries.id")
}

func withoutRatedNames(query *gorm.DB, userID uint) *gorm.DB {
	return query.
		Where("names.id NOT IN (SELECT name_id FROM user_liked WHERE user_id = ?)", userID).
		Where("names.id NOT IN (SELECT name_id FROM user_disliked WHERE user_id = ?)", userID)
}

func (repo *NameRepository) Search(filter NameFilter) ([]NameRow, error) {
	query := repo.catalogQuery()

	if filter.Letter != "" {
		if filter.Anywhere {
			query = query.Where("names.name LIKE ?", "%"+filter.Letter+"%")
		} else {
			query = query.Where("names.name LIKE ?", filter.Letter+"%")
		}
	}
	if len(filter.Genders) > 0 {
		query = query.Where("names.gender IN ?", filter.Genders)
	}
	if len(filter.Countries) > 0 {
		query = query.Where("countries.country IN ?", filter.Countries)
	}
	if filter.RatedBy != nil {
		query = withoutRatedNames(query, *filter.RatedBy)
	}

	rows := make([]NameRow, 0)
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Similar returns the catalog rows of every name sharing the similarity
// group of nameID, excluding nameID itself.
func (repo *NameRepository) Similar(nameID uint, ratedBy *uint) ([]NameRow, error) {
	query := repo.catalogQuery().
		Where(`names.id IN (
SELECT s.name_id FROM similar s
WHERE s.group_id = (SELECT s2.group_id FROM similar s2 WHERE s2.name_id = ?)
  AND s.name_id <> ?)`, nameID, nameID)
	if ratedBy != nil {
		query = withoutRatedNames(query, *ratedBy)
	}

	rows := make([]NameRow, 0)
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (repo *NameRepository) ListLikedBy(userID uint) ([]NameRow, error) {
	return repo.listRatedBy(userID, "user_liked")
}

func (repo *NameRepository) ListDislikedBy(userID uint) ([]NameRow, error) {
	return repo.listRatedBy(userID, "user_disliked")
}

func (repo *NameRepository) listRatedBy(userID uint, table string) ([]NameRow, error) {
	rows := make([]NameRow, 0)
	err := repo.catalogQuery().
		Where("names.id IN (SELECT name_id FROM "+table+" WHERE user_id = ?)", userID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
