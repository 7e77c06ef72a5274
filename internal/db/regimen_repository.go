package db

import (
	"github.com/koe-app/koe/internal/models"
	"github.com/koe-app/koe/internal/validation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RegimenRepository struct {
	database *gorm.DB
	changed  func(tables ...string)
}

func (repo *RegimenRepository) Add(entry *models.RegimenHistory) error {
	if err := validation.Validate(models.TableRegimenHistory, entry); err != nil {
		return err
	}
	if err := repo.database.Create(entry).Error; err != nil {
		return storageFailure("add regimen", err)
	}
	repo.changed(models.TableRegimenHistory)
	return nil
}

func (repo *RegimenRepository) ListAll() ([]models.RegimenHistory, error) {
	records := make([]models.RegimenHistory, 0)
	if err := repo.database.Order("created_at ASC, id ASC").Find(&records).Error; err != nil {
		return nil, storageFailure("list regimens", err)
	}
	return records, nil
}

func (repo *RegimenRepository) ListActive() ([]models.RegimenHistory, error) {
	records := make([]models.RegimenHistory, 0)
	if err := repo.database.
		Where("is_active = ?", true).
		Order("created_at ASC, id ASC").
		Find(&records).Error; err != nil {
		return nil, storageFailure("list active regimens", err)
	}
	return records, nil
}

// DeactivateAll flips every active record to inactive. Declaring a new
// phase runs this and the insert inside one transaction, which is the only
// way is_active ever changes.
func (repo *RegimenRepository) DeactivateAll() error {
	if err := repo.database.Model(&models.RegimenHistory{}).
		Where("is_active = ?", true).
		Update("is_active", false).Error; err != nil {
		return storageFailure("deactivate regimens", err)
	}
	repo.changed(models.TableRegimenHistory)
	return nil
}

func (repo *RegimenRepository) Clear() error {
	if err := repo.database.Where("1 = 1").Delete(&models.RegimenHistory{}).Error; err != nil {
		return storageFailure("clear regimens", err)
	}
	repo.changed(models.TableRegimenHistory)
	return nil
}

func (repo *RegimenRepository) BulkPut(entries []models.RegimenHistory) error {
	for index := range entries {
		if err := validation.Validate(models.TableRegimenHistory, &entries[index]); err != nil {
			return err
		}
	}
	if len(entries) == 0 {
		return nil
	}
	if err := repo.database.Clauses(clause.OnConflict{UpdateAll: true}).Create(&entries).Error; err != nil {
		return storageFailure("bulk put regimens", err)
	}
	repo.changed(models.TableRegimenHistory)
	return nil
}
