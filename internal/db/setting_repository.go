package db

import (
	"github.com/koe-app/koe/internal/models"
	"github.com/koe-app/koe/internal/validation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingRepository struct {
	database *gorm.DB
	changed  func(tables ...string)
}

func (repo *SettingRepository) Get(key string) (models.Setting, bool, error) {
	setting := models.Setting{}
	result := repo.database.Limit(1).Find(&setting, "key = ?", key)
	if result.Error != nil {
		return models.Setting{}, false, storageFailure("get setting", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.Setting{}, false, nil
	}
	return setting, true, nil
}

func (repo *SettingRepository) Put(setting *models.Setting) error {
	if err := validation.Validate(models.TableSettings, setting); err != nil {
		return err
	}
	if err := repo.database.Clauses(clause.OnConflict{UpdateAll: true}).Create(setting).Error; err != nil {
		return storageFailure("put setting", err)
	}
	repo.changed(models.TableSettings)
	return nil
}

func (repo *SettingRepository) List() ([]models.Setting, error) {
	settings := make([]models.Setting, 0)
	if err := repo.database.Order("key ASC").Find(&settings).Error; err != nil {
		return nil, storageFailure("list settings", err)
	}
	return settings, nil
}

func (repo *SettingRepository) Delete(key string) error {
	result := repo.database.Delete(&models.Setting{}, "key = ?", key)
	if result.Error != nil {
		return storageFailure("delete setting", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	repo.changed(models.TableSettings)
	return nil
}

func (repo *SettingRepository) Clear() error {
	if err := repo.database.Where("1 = 1").Delete(&models.Setting{}).Error; err != nil {
		return storageFailure("clear settings", err)
	}
	repo.changed(models.TableSettings)
	return nil
}

func (repo *SettingRepository) BulkPut(settings []models.Setting) error {
	for index := range settings {
		if err := validation.Validate(models.TableSettings, &settings[index]); err != nil {
			return err
		}
	}
	if len(settings) == 0 {
		return nil
	}
	if err := repo.database.Clauses(clause.OnConflict{UpdateAll: true}).Create(&settings).Error; err != nil {
		return storageFailure("bulk put settings", err)
	}
	repo.changed(models.TableSettings)
	return nil
}
