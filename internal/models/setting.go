package models

import "gorm.io/datatypes"

// Setting is a key to arbitrary-JSON value pair. Used for the user profile,
// notification flag, quick-log stamp label lists, per-stamp dosage details
// and onboarding/consent flags. No schema beyond key presence.
type Setting struct {
	Key   string         `gorm:"primaryKey" json:"key"`
	Value datatypes.JSON `json:"value"`
}

func (Setting) TableName() string {
	return TableSettings
}

// Well-known setting keys.
const (
	SettingStampSymptom  = "stamps_symptom"
	SettingStampMedicine = "stamps_medicine"
	SettingStampTrigger  = "stamps_trigger"
	SettingStampFood     = "stamps_food"
	SettingStampDetails  = "stamp_details"
	SettingProfile       = "profile"
	SettingNotifications = "notifications_enabled"
	SettingConsent       = "terms_accepted"
)

// StampDetail carries per-stamp dosage/status metadata. A configured dosage
// becomes part of the event log name, e.g. "Ibuprofen (200mg)".
type StampDetail struct {
	Status string `json:"status,omitempty"` // none, decrease, increase, new, stop
	Dosage string `json:"dosage,omitempty"`
	Unit   string `json:"unit,omitempty"`
}
