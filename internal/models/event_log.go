package models

const (
	EventTypeSymptom  = "symptom"
	EventTypeMedicine = "medicine"
	EventTypeTrigger  = "trigger"
	EventTypeFood     = "food"
	EventTypeNap      = "nap"
)

// EventLog is one discrete stamped occurrence. Timestamp (epoch ms) is the
// authoritative ordering key; Date is denormalized from it in the journal's
// local timezone so calendar range scans stay index-friendly.
//
// Severity semantics depend on Type: intensity for symptom/trigger,
// quantity count for medicine/food, minutes for nap.
type EventLog struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Date      string `gorm:"index;not null" json:"date"`
	Type      string `gorm:"index;not null" json:"type"`
	Name      string `gorm:"not null" json:"name"`
	Severity  int    `gorm:"not null" json:"severity"`
	Timestamp int64  `gorm:"index;not null" json:"timestamp"`
	Note      string `json:"note,omitempty"`
}

func (EventLog) TableName() string {
	return TableEventLogs
}

// IsQuantityEventType reports whether severity counts repetitions instead of
// grading intensity.
func IsQuantityEventType(eventType string) bool {
	return eventType == EventTypeMedicine || eventType == EventTypeFood
}

// MaxComboSeverity is the wrap point for repeated-tap severity cycling.
func MaxComboSeverity(eventType string) int {
	if IsQuantityEventType(eventType) {
		return 4
	}
	return 3
}
