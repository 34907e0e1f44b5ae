package db

import (
	"errors"
	"time"

	"pickaname/internal/models"

	"gorm.io/gorm"
)

// FailedLoginRepository is the per-IP brute-force ledger. All writes are
// single statements so two concurrent failures from one IP cannot lose an
// increment or leave two rows behind.
type FailedLoginRepository struct {
	database *gorm.DB
}

func NewFailedLoginRepository(database *gorm.DB) *FailedLoginRepository {
	return &FailedLoginRepository{database: database}
}

// RecordFailure bumps the attempt counter for the IP, creating the row on
// first failure. The ON CONFLICT upsert keeps the increment atomic.
func (repo *FailedLoginRepository) RecordFailure(ip string, at time.Time) error {
	return repo.database.Exec(`
INSERT INTO failed_logins (ip, attempts, last_attempt)
VALUES (?, 1, ?)
ON CONFLICT(ip) DO UPDATE SET
  attempts = attempts + 1,
  last_attempt = excluded.last_attempt`, ip, at).Error
}

// Find returns the ledger row for the IP, reporting absence without error.
func (repo *FailedLoginRepository) Find(ip string) (models.FailedLogin, bool, error) {
	var record models.FailedLogin
	err := repo.database.Where("ip = ?", ip).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.FailedLogin{}, false, nil
	}
	if err != nil {
		return models.FailedLogin{}, false, err
	}
	return record, true, nil
}

// Clear deletes the IP's row entirely; invoked after a successful login.
func (repo *FailedLoginRepository) Clear(ip string) error {
	return repo.database.Where("ip = ?", ip).Delete(&models.FailedLogin{}).Error
}
