package db

import (
	"github.com/koe-app/koe/internal/models"
	"github.com/koe-app/koe/internal/validation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventLogRepository struct {
	database *gorm.DB
	changed  func(tables ...string)
}

// Add inserts a new event with a store-generated id.
func (repo *EventLogRepository) Add(entry *models.EventLog) error {
	if err := validation.Validate(models.TableEventLogs, entry); err != nil {
		return err
	}
	if err := repo.database.Create(entry).Error; err != nil {
		return storageFailure("add event log", err)
	}
	repo.changed(models.TableEventLogs)
	return nil
}

func (repo *EventLogRepository) Get(id uint) (models.EventLog, bool, error) {
	entry := models.EventLog{}
	result := repo.database.Limit(1).Find(&entry, "id = ?", id)
	if result.Error != nil {
		return models.EventLog{}, false, storageFailure("get event log", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.EventLog{}, false, nil
	}
	return entry, true, nil
}

// UpdateSeverity mutates one event's severity in place. The merged record
// is validated, so combo cycling can never push severity outside its range.
func (repo *EventLogRepository) UpdateSeverity(id uint, severity int) error {
	entry, found, err := repo.Get(id)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	entry.Severity = severity
	if err := validation.Validate(models.TableEventLogs, &entry); err != nil {
		return err
	}
	if err := repo.database.Model(&models.EventLog{}).
		Where("id = ?", id).
		Update("severity", severity).Error; err != nil {
		return storageFailure("update event severity", err)
	}
	repo.changed(models.TableEventLogs)
	return nil
}

// Save replaces an existing event. Fails with ErrNotFound for absent ids.
func (repo *EventLogRepository) Save(entry *models.EventLog) error {
	if err := validation.Validate(models.TableEventLogs, entry); err != nil {
		return err
	}
	result := repo.database.Model(&models.EventLog{}).
		Where("id = ?", entry.ID).
		Select("date", "type", "name", "severity", "timestamp", "note").
		Updates(entry)
	if result.Error != nil {
		return storageFailure("save event log", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	repo.changed(models.TableEventLogs)
	return nil
}

func (repo *EventLogRepository) ListByDate(date string) ([]models.EventLog, error) {
	logs := make([]models.EventLog, 0)
	if err := repo.database.
		Where("date = ?", date).
		Order("timestamp ASC, id ASC").
		Find(&logs).Error; err != nil {
		return nil, storageFailure("list event logs", err)
	}
	return logs, nil
}

func (repo *EventLogRepository) ListAll() ([]models.EventLog, error) {
	logs := make([]models.EventLog, 0)
	if err := repo.database.Order("date ASC, timestamp ASC, id ASC").Find(&logs).Error; err != nil {
		return nil, storageFailure("list event logs", err)
	}
	return logs, nil
}

// ListRange returns events with from <= date <= to, ordered by date then
// timestamp.
func (repo *EventLogRepository) ListRange(from string, to string) ([]models.EventLog, error) {
	logs := make([]models.EventLog, 0)
	if err := repo.database.
		Where("date >= ? AND date <= ?", from, to).
		Order("date ASC, timestamp ASC, id ASC").
		Find(&logs).Error; err != nil {
		return nil, storageFailure("list event logs", err)
	}
	return logs, nil
}

func (repo *EventLogRepository) ListRangeByType(from string, to string, eventType string) ([]models.EventLog, error) {
	logs := make([]models.EventLog, 0)
	if err := repo.database.
		Where("date >= ? AND date <= ? AND type = ?", from, to, eventType).
		Order("date ASC, timestamp ASC, id ASC").
		Find(&logs).Error; err != nil {
		return nil, storageFailure("list event logs by type", err)
	}
	return logs, nil
}

func (repo *EventLogRepository) Delete(id uint) error {
	result := repo.database.Delete(&models.EventLog{}, "id = ?", id)
	if result.Error != nil {
		return storageFailure("delete event log", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	repo.changed(models.TableEventLogs)
	return nil
}

func (repo *EventLogRepository) Clear() error {
	if err := repo.database.Where("1 = 1").Delete(&models.EventLog{}).Error; err != nil {
		return storageFailure("clear event logs", err)
	}
	repo.changed(models.TableEventLogs)
	return nil
}

func (repo *EventLogRepository) BulkPut(entries []models.EventLog) error {
	for index := range entries {
		if err := validation.Validate(models.TableEventLogs, &entries[index]); err != nil {
			return err
		}
	}
	if len(entries) == 0 {
		return nil
	}
	if err := repo.database.Clauses(clause.OnConflict{UpdateAll: true}).Create(&entries).Error; err != nil {
		return storageFailure("bulk put event logs", err)
	}
	repo.changed(models.TableEventLogs)
	return nil
}
