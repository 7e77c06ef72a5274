package db

import (
	"github.com/koe-app/koe/internal/models"
	"github.com/koe-app/koe/internal/validation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ClinicVisitRepository struct {
	database *gorm.DB
	changed  func(tables ...string)
}

func (repo *ClinicVisitRepository) Add(visit *models.ClinicVisit) error {
	if err := validation.Validate(models.TableClinicVisits, visit); err != nil {
		return err
	}
	if err := repo.database.Create(visit).Error; err != nil {
		return storageFailure("add clinic visit", err)
	}
	repo.changed(models.TableClinicVisits)
	return nil
}

func (repo *ClinicVisitRepository) Get(id uint) (models.ClinicVisit, bool, error) {
	visit := models.ClinicVisit{}
	result := repo.database.Limit(1).Find(&visit, "id = ?", id)
	if result.Error != nil {
		return models.ClinicVisit{}, false, storageFailure("get clinic visit", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ClinicVisit{}, false, nil
	}
	return visit, true, nil
}

func (repo *ClinicVisitRepository) List() ([]models.ClinicVisit, error) {
	visits := make([]models.ClinicVisit, 0)
	if err := repo.database.Order("date ASC, time ASC, id ASC").Find(&visits).Error; err != nil {
		return nil, storageFailure("list clinic visits", err)
	}
	return visits, nil
}

func (repo *ClinicVisitRepository) ListRange(from string, to string) ([]models.ClinicVisit, error) {
	visits := make([]models.ClinicVisit, 0)
	if err := repo.database.
		Where("date >= ? AND date <= ?", from, to).
		Order("date ASC, time ASC, id ASC").
		Find(&visits).Error; err != nil {
		return nil, storageFailure("list clinic visits", err)
	}
	return visits, nil
}

func (repo *ClinicVisitRepository) Save(visit *models.ClinicVisit) error {
	if err := validation.Validate(models.TableClinicVisits, visit); err != nil {
		return err
	}
	result := repo.database.Model(&models.ClinicVisit{}).
		Where("id = ?", visit.ID).
		Select("date", "clinic_id", "time", "note", "is_completed").
		Updates(visit)
	if result.Error != nil {
		return storageFailure("save clinic visit", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	repo.changed(models.TableClinicVisits)
	return nil
}

func (repo *ClinicVisitRepository) Delete(id uint) error {
	result := repo.database.Delete(&models.ClinicVisit{}, "id = ?", id)
	if result.Error != nil {
		return storageFailure("delete clinic visit", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	repo.changed(models.TableClinicVisits)
	return nil
}

func (repo *ClinicVisitRepository) Clear() error {
	if err := repo.database.Where("1 = 1").Delete(&models.ClinicVisit{}).Error; err != nil {
		return storageFailure("clear clinic visits", err)
	}
	repo.changed(models.TableClinicVisits)
	return nil
}

func (repo *ClinicVisitRepository) BulkPut(visits []models.ClinicVisit) error {
	for index := range visits {
		if err := validation.Validate(models.TableClinicVisits, &visits[index]); err != nil {
			return err
		}
	}
	if len(visits) == 0 {
		return nil
	}
	if err := repo.database.Clauses(clause.OnConflict{UpdateAll: true}).Create(&visits).Error; err != nil {
		return storageFailure("bulk put clinic visits", err)
	}
	repo.changed(models.TableClinicVisits)
	return nil
}
