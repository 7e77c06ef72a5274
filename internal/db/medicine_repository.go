package db

import (
	"github.com/koe-app/koe/internal/models"
	"github.com/koe-app/koe/internal/validation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MedicineRepository struct {
	database *gorm.DB
	changed  func(tables ...string)
}

func (repo *MedicineRepository) Add(medicine *models.Medicine) error {
	if err := validation.Validate(models.TableMedicines, medicine); err != nil {
		return err
	}
	if err := repo.database.Create(medicine).Error; err != nil {
		return storageFailure("add medicine", err)
	}
	repo.changed(models.TableMedicines)
	return nil
}

func (repo *MedicineRepository) Get(id uint) (models.Medicine, bool, error) {
	medicine := models.Medicine{}
	result := repo.database.Limit(1).Find(&medicine, "id = ?", id)
	if result.Error != nil {
		return models.Medicine{}, false, storageFailure("get medicine", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.Medicine{}, false, nil
	}
	return medicine, true, nil
}

func (repo *MedicineRepository) List() ([]models.Medicine, error) {
	medicines := make([]models.Medicine, 0)
	if err := repo.database.Order("name ASC, id ASC").Find(&medicines).Error; err != nil {
		return nil, storageFailure("list medicines", err)
	}
	return medicines, nil
}

func (repo *MedicineRepository) Save(medicine *models.Medicine) error {
	if err := validation.Validate(models.TableMedicines, medicine); err != nil {
		return err
	}
	result := repo.database.Model(&models.Medicine{}).
		Where("id = ?", medicine.ID).
		Select("name", "dosage", "type", "daily_dose", "updated_at").
		Updates(medicine)
	if result.Error != nil {
		return storageFailure("save medicine", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	repo.changed(models.TableMedicines)
	return nil
}

func (repo *MedicineRepository) Delete(id uint) error {
	result := repo.database.Delete(&models.Medicine{}, "id = ?", id)
	if result.Error != nil {
		return storageFailure("delete medicine", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	repo.changed(models.TableMedicines)
	return nil
}

func (repo *MedicineRepository) Clear() error {
	if err := repo.database.Where("1 = 1").Delete(&models.Medicine{}).Error; err != nil {
		return storageFailure("clear medicines", err)
	}
	repo.changed(models.TableMedicines)
	return nil
}

func (repo *MedicineRepository) BulkPut(medicines []models.Medicine) error {
	for index := range medicines {
		if err := validation.Validate(models.TableMedicines, &medicines[index]); err != nil {
			return err
		}
	}
	if len(medicines) == 0 {
		return nil
	}
	if err := repo.database.Clauses(clause.OnConflict{UpdateAll: true}).Create(&medicines).Error; err != nil {
		return storageFailure("bulk put medicines", err)
	}
	repo.changed(models.TableMedicines)
	return nil
}
