package db

import (
	"github.com/koe-app/koe/internal/models"
	"github.com/koe-app/koe/internal/validation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DayLogRepository struct {
	database *gorm.DB
	changed  func(tables ...string)
}

func (repo *DayLogRepository) Get(date string) (models.DayLog, bool, error) {
	entry := models.DayLog{}
	result := repo.database.Limit(1).Find(&entry, "id = ?", date)
	if result.Error != nil {
		return models.DayLog{}, false, storageFailure("get day log", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.DayLog{}, false, nil
	}
	return entry, true, nil
}

// ListRange returns day logs with from <= id <= to, ordered by date. The
// YYYY-MM-DD primary key collates lexicographically in calendar order.
func (repo *DayLogRepository) ListRange(from string, to string) ([]models.DayLog, error) {
	logs := make([]models.DayLog, 0)
	if err := repo.database.
		Where("id >= ? AND id <= ?", from, to).
		Order("id ASC").
		Find(&logs).Error; err != nil {
		return nil, storageFailure("list day logs", err)
	}
	return logs, nil
}

func (repo *DayLogRepository) ListAll() ([]models.DayLog, error) {
	logs := make([]models.DayLog, 0)
	if err := repo.database.Order("id ASC").Find(&logs).Error; err != nil {
		return nil, storageFailure("list day logs", err)
	}
	return logs, nil
}

// Put upserts by date. The record is validated before it reaches the
// engine; a validation failure leaves storage untouched.
func (repo *DayLogRepository) Put(entry *models.DayLog) error {
	if err := validation.Validate(models.TableDayLogs, entry); err != nil {
		return err
	}
	if err := repo.database.Clauses(clause.OnConflict{UpdateAll: true}).Create(entry).Error; err != nil {
		return storageFailure("put day log", err)
	}
	repo.changed(models.TableDayLogs)
	return nil
}

func (repo *DayLogRepository) Delete(date string) error {
	result := repo.database.Delete(&models.DayLog{}, "id = ?", date)
	if result.Error != nil {
		return storageFailure("delete day log", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	repo.changed(models.TableDayLogs)
	return nil
}

func (repo *DayLogRepository) Clear() error {
	if err := repo.database.Where("1 = 1").Delete(&models.DayLog{}).Error; err != nil {
		return storageFailure("clear day logs", err)
	}
	repo.changed(models.TableDayLogs)
	return nil
}

// BulkPut upserts a batch, used by import. Every record is still validated;
// the import layer defaults malformed fields before calling.
func (repo *DayLogRepository) BulkPut(entries []models.DayLog) error {
	for index := range entries {
		if err := validation.Validate(models.TableDayLogs, &entries[index]); err != nil {
			return err
		}
	}
	if len(entries) == 0 {
		return nil
	}
	if err := repo.database.Clauses(clause.OnConflict{UpdateAll: true}).Create(&entries).Error; err != nil {
		return storageFailure("bulk put day logs", err)
	}
	repo.changed(models.TableDayLogs)
	return nil
}
