package models

import "time"

const (
	TodayModeNormal = "normal"
	TodayModeEco    = "eco"
	TodayModeRest   = "rest"
)

const (
	DayOverallGood = "good"
	DayOverallFair = "fair"
	DayOverallBad  = "bad"
)

const (
	DinnerLight  = "light"
	DinnerMedium = "medium"
	DinnerHeavy  = "heavy"
)

// DayLog is the single record for one calendar date. The primary key is the
// date itself in YYYY-MM-DD form, which is also the natural ordering key for
// range scans. Created lazily on the first write for a date; CreatedAt never
// changes after that and UpdatedAt strictly increases on every write. Both
// are epoch milliseconds managed by the day service, not by GORM.
type DayLog struct {
	ID               string     `gorm:"primaryKey" json:"id"`
	SleepStart       *time.Time `json:"sleepStart,omitempty"`
	SleepEnd         *time.Time `json:"sleepEnd,omitempty"`
	SleepQuality     *int       `json:"sleepQuality,omitempty"`     // 1-5
	MorningArousal   *int       `json:"morningArousal,omitempty"`   // 1-5
	MigraineProdrome *int       `json:"migraineProdrome,omitempty"` // 0-3
	FatigueLevel     *int       `json:"fatigueLevel,omitempty"`     // 0-3
	IsMenstruation   *bool      `json:"isMenstruation,omitempty"`
	TodayMode        string     `json:"todayMode,omitempty"`
	DayOverall       string     `json:"dayOverall,omitempty"`
	DinnerAmount     string     `json:"dinnerAmount,omitempty"`
	BestMeasure      string     `json:"bestMeasure,omitempty"`
	Note             string     `json:"note,omitempty"`
	EchoSummary      string     `json:"echoSummary,omitempty"`
	NapDuration      *int       `json:"napDuration,omitempty"` // minutes, 0-480
	CreatedAt        int64      `gorm:"autoCreateTime:false" json:"createdAt"`
	UpdatedAt        int64      `gorm:"autoUpdateTime:false" json:"updatedAt"`
}

// DayLogPatch is a partial day log update. Nil fields are left untouched by
// the upsert merge; the merged record is what gets validated and stored.
type DayLogPatch struct {
	SleepStart       *time.Time `json:"sleepStart"`
	SleepEnd         *time.Time `json:"sleepEnd"`
	SleepQuality     *int       `json:"sleepQuality"`
	MorningArousal   *int       `json:"morningArousal"`
	MigraineProdrome *int       `json:"migraineProdrome"`
	FatigueLevel     *int       `json:"fatigueLevel"`
	IsMenstruation   *bool      `json:"isMenstruation"`
	TodayMode        *string    `json:"todayMode"`
	DayOverall       *string    `json:"dayOverall"`
	DinnerAmount     *string    `json:"dinnerAmount"`
	BestMeasure      *string    `json:"bestMeasure"`
	Note             *string    `json:"note"`
	EchoSummary      *string    `json:"echoSummary"`
	NapDuration      *int       `json:"napDuration"`
}

// Apply merges the patch onto the entry in place.
func (patch DayLogPatch) Apply(entry *DayLog) {
	if patch.SleepStart != nil {
		entry.SleepStart = patch.SleepStart
	}
	if patch.SleepEnd != nil {
		entry.SleepEnd = patch.SleepEnd
	}
	if patch.SleepQuality != nil {
		entry.SleepQuality = patch.SleepQuality
	}
	if patch.MorningArousal != nil {
		entry.MorningArousal = patch.MorningArousal
	}
	if patch.MigraineProdrome != nil {
		entry.MigraineProdrome = patch.MigraineProdrome
	}
	if patch.FatigueLevel != nil {
		entry.FatigueLevel = patch.FatigueLevel
	}
	if patch.IsMenstruation != nil {
		entry.IsMenstruation = patch.IsMenstruation
	}
	if patch.TodayMode != nil {
		entry.TodayMode = *patch.TodayMode
	}
	if patch.DayOverall != nil {
		entry.DayOverall = *patch.DayOverall
	}
	if patch.DinnerAmount != nil {
		entry.DinnerAmount = *patch.DinnerAmount
	}
	if patch.BestMeasure != nil {
		entry.BestMeasure = *patch.BestMeasure
	}
	if patch.Note != nil {
		entry.Note = *patch.Note
	}
	if patch.EchoSummary != nil {
		entry.EchoSummary = *patch.EchoSummary
	}
	if patch.NapDuration != nil {
		entry.NapDuration = patch.NapDuration
	}
}

func (DayLog) TableName() string {
	return TableDayLogs
}
