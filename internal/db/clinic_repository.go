package db

import (
	"github.com/koe-app/koe/internal/models"
	"github.com/koe-app/koe/internal/validation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ClinicRepository struct {
	database *gorm.DB
	changed  func(tables ...string)
}

func (repo *ClinicRepository) Add(clinic *models.Clinic) error {
	if err := validation.Validate(models.TableClinics, clinic); err != nil {
		return err
	}
	if err := repo.database.Create(clinic).Error; err != nil {
		return storageFailure("add clinic", err)
	}
	repo.changed(models.TableClinics)
	return nil
}

func (repo *ClinicRepository) Get(id uint) (models.Clinic, bool, error) {
	clinic := models.Clinic{}
	result := repo.database.Limit(1).Find(&clinic, "id = ?", id)
	if result.Error != nil {
		return models.Clinic{}, false, storageFailure("get clinic", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.Clinic{}, false, nil
	}
	return clinic, true, nil
}

func (repo *ClinicRepository) List() ([]models.Clinic, error) {
	clinics := make([]models.Clinic, 0)
	if err := repo.database.Order("id ASC").Find(&clinics).Error; err != nil {
		return nil, storageFailure("list clinics", err)
	}
	return clinics, nil
}

func (repo *ClinicRepository) Save(clinic *models.Clinic) error {
	if err := validation.Validate(models.TableClinics, clinic); err != nil {
		return err
	}
	result := repo.database.Model(&models.Clinic{}).
		Where("id = ?", clinic.ID).
		Select("name", "department").
		Updates(clinic)
	if result.Error != nil {
		return storageFailure("save clinic", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	repo.changed(models.TableClinics)
	return nil
}

func (repo *ClinicRepository) Delete(id uint) error {
	result := repo.database.Delete(&models.Clinic{}, "id = ?", id)
	if result.Error != nil {
		return storageFailure("delete clinic", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	repo.changed(models.TableClinics)
	return nil
}

func (repo *ClinicRepository) Clear() error {
	if err := repo.database.Where("1 = 1").Delete(&models.Clinic{}).Error; err != nil {
		return storageFailure("clear clinics", err)
	}
	repo.changed(models.TableClinics)
	return nil
}

func (repo *ClinicRepository) BulkPut(clinics []models.Clinic) error {
	for index := range clinics {
		if err := validation.Validate(models.TableClinics, &clinics[index]); err != nil {
			return err
		}
	}
	if len(clinics) == 0 {
		return nil
	}
	if err := repo.database.Clauses(clause.OnConflict{UpdateAll: true}).Create(&clinics).Error; err != nil {
		return storageFailure("bulk put clinics", err)
	}
	repo.changed(models.TableClinics)
	return nil
}
