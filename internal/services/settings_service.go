package services

import (
	"encoding/json"
	"fmt"

	"github.com/koe-app/koe/internal/db"
	"github.com/koe-app/koe/internal/models"
	"github.com/koe-app/koe/internal/validation"
	"gorm.io/datatypes"
)

// maxStampLabels caps each quick-log stamp list. The stamp bar renders one
// row per label, so the cap is a product rule, not a storage limit.
const maxStampLabels = 12

// SettingsService wraps the key/value settings table with typed accessors
// for the handful of keys the rest of the app understands.
type SettingsService struct {
	store *db.Store
}

func NewSettingsService(store *db.Store) *SettingsService {
	return &SettingsService{store: store}
}

func stampSettingKey(eventType string) (string, bool) {
	switch eventType {
	case models.EventTypeSymptom:
		return models.SettingStampSymptom, true
	case models.EventTypeMedicine:
		return models.SettingStampMedicine, true
	case models.EventTypeTrigger:
		return models.SettingStampTrigger, true
	case models.EventTypeFood:
		return models.SettingStampFood, true
	default:
		return "", false
	}
}

// StampLabels returns the configured quick-log labels for one stamp type.
// Missing or malformed configuration reads as an empty list.
func (service *SettingsService) StampLabels(eventType string) ([]string, error) {
	key, valid := stampSettingKey(eventType)
	if !valid {
		return nil, &validation.ValidationError{
			Table:   models.TableSettings,
			Field:   "key",
			Message: "no stamp list for event type " + eventType,
		}
	}
	setting, found, err := service.store.Settings().Get(key)
	if err != nil {
		return nil, err
	}
	labels := make([]string, 0)
	if !found || len(setting.Value) == 0 {
		return labels, nil
	}
	if err := json.Unmarshal(setting.Value, &labels); err != nil {
		return make([]string, 0), nil
	}
	return labels, nil
}

func (service *SettingsService) SetStampLabels(eventType string, labels []string) error {
	key, valid := stampSettingKey(eventType)
	if !valid {
		return &validation.ValidationError{
			Table:   models.TableSettings,
			Field:   "key",
			Message: "no stamp list for event type " + eventType,
		}
	}
	if len(labels) > maxStampLabels {
		return &validation.ValidationError{
			Table:   models.TableSettings,
			Field:   key,
			Message: fmt.Sprintf("at most %d stamps per type", maxStampLabels),
		}
	}
	return service.putJSON(key, labels)
}

// StampDetails returns per-stamp dosage/status metadata keyed by label.
func (service *SettingsService) StampDetails() (map[string]models.StampDetail, error) {
	setting, found, err := service.store.Settings().Get(models.SettingStampDetails)
	if err != nil {
		return nil, err
	}
	details := make(map[string]models.StampDetail)
	if !found || len(setting.Value) == 0 {
		return details, nil
	}
	if err := json.Unmarshal(setting.Value, &details); err != nil {
		return make(map[string]models.StampDetail), nil
	}
	return details, nil
}

func (service *SettingsService) SetStampDetail(label string, detail models.StampDetail) error {
	details, err := service.StampDetails()
	if err != nil {
		return err
	}
	details[label] = detail
	return service.putJSON(models.SettingStampDetails, details)
}

// Get returns the raw JSON value for any key.
func (service *SettingsService) Get(key string) (json.RawMessage, bool, error) {
	setting, found, err := service.store.Settings().Get(key)
	if err != nil || !found {
		return nil, found, err
	}
	return json.RawMessage(setting.Value), true, nil
}

// Put stores a raw JSON value under any key.
func (service *SettingsService) Put(key string, value json.RawMessage) error {
	if !json.Valid(value) {
		return &validation.ValidationError{
			Table:   models.TableSettings,
			Field:   key,
			Message: "value must be valid JSON",
		}
	}
	return service.store.Settings().Put(&models.Setting{Key: key, Value: datatypes.JSON(value)})
}

func (service *SettingsService) NotificationsEnabled() (bool, error) {
	return service.boolean(models.SettingNotifications)
}

func (service *SettingsService) SetNotificationsEnabled(enabled bool) error {
	return service.putJSON(models.SettingNotifications, enabled)
}

func (service *SettingsService) ConsentAccepted() (bool, error) {
	return service.boolean(models.SettingConsent)
}

func (service *SettingsService) AcceptConsent() error {
	return service.putJSON(models.SettingConsent, true)
}

func (service *SettingsService) boolean(key string) (bool, error) {
	setting, found, err := service.store.Settings().Get(key)
	if err != nil || !found {
		return false, err
	}
	var value bool
	if err := json.Unmarshal(setting.Value, &value); err != nil {
		return false, nil
	}
	return value, nil
}

func (service *SettingsService) putJSON(key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return service.store.Settings().Put(&models.Setting{Key: key, Value: datatypes.JSON(encoded)})
}
