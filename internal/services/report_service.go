package services

import (
	"sort"
	"time"

	"github.com/koe-app/koe/internal/models"
)

type ReportDayLogSource interface {
	ListRange(from string, to string) ([]models.DayLog, error)
}

type ReportEventSource interface {
	ListRange(from string, to string) ([]models.EventLog, error)
	ListByDate(date string) ([]models.EventLog, error)
}

type ReportRegimenSource interface {
	ListAll() ([]models.RegimenHistory, error)
}

type ReportMedicineSource interface {
	List() ([]models.Medicine, error)
}

// NameCount is one row of a frequency ranking, most frequent first.
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// SleepStats summarizes nightly sleep duration over a period. Nights
// missing either end of the sleep window do not contribute.
type SleepStats struct {
	Nights         int     `json:"nights"`
	AverageMinutes float64 `json:"averageMinutes"`
	MinMinutes     int     `json:"minMinutes"`
	MaxMinutes     int     `json:"maxMinutes"`
}

// ReportSummary is the aggregate view over one reporting period. It is a
// pure read-side product: building it never writes.
type ReportSummary struct {
	From                   string      `json:"from"`
	To                     string      `json:"to"`
	DaysLogged             int         `json:"daysLogged"`
	SymptomFrequency       []NameCount `json:"symptomFrequency"`
	MedicineFrequency      []NameCount `json:"medicineFrequency"`
	TriggerFrequency       []NameCount `json:"triggerFrequency"`
	Sleep                  SleepStats  `json:"sleep"`
	AverageSleepQuality    float64     `json:"averageSleepQuality"`
	AverageMorningArousal  float64     `json:"averageMorningArousal"`
	AverageSymptomSeverity float64     `json:"averageSymptomSeverity"`
	TotalNapMinutes        int         `json:"totalNapMinutes"`
}

// ReportRequest is the payload shipped to the language-model collaborator
// for a period report. Only structured aggregates and the journal rows for
// the period cross the wire, never a raw database dump.
type ReportRequest struct {
	Summary   ReportSummary           `json:"summary"`
	DayLogs   []models.DayLog         `json:"dayLogs"`
	Regimens  []models.RegimenHistory `json:"regimens"`
	Medicines []models.Medicine       `json:"medicines"`
}

// EchoRequest is the payload for a single-day reflective summary.
type EchoRequest struct {
	Date   string            `json:"date"`
	DayLog *models.DayLog    `json:"dayLog,omitempty"`
	Events []models.EventLog `json:"events"`
}

type ReportService struct {
	days      ReportDayLogSource
	events    ReportEventSource
	regimens  ReportRegimenSource
	medicines ReportMedicineSource
}

func NewReportService(days ReportDayLogSource, events ReportEventSource, regimens ReportRegimenSource, medicines ReportMedicineSource) *ReportService {
	return &ReportService{days: days, events: events, regimens: regimens, medicines: medicines}
}

func (service *ReportService) BuildSummary(from string, to string) (ReportSummary, error) {
	dayLogs, err := service.days.ListRange(from, to)
	if err != nil {
		return ReportSummary{}, err
	}
	events, err := service.events.ListRange(from, to)
	if err != nil {
		return ReportSummary{}, err
	}

	summary := ReportSummary{
		From:              from,
		To:                to,
		DaysLogged:        len(dayLogs),
		SymptomFrequency:  rankByName(events, models.EventTypeSymptom),
		MedicineFrequency: rankByName(events, models.EventTypeMedicine),
		TriggerFrequency:  rankByName(events, models.EventTypeTrigger),
		Sleep:             sleepStats(dayLogs),
	}

	summary.AverageSleepQuality = averagePointer(dayLogs, func(entry models.DayLog) *int { return entry.SleepQuality })
	summary.AverageMorningArousal = averagePointer(dayLogs, func(entry models.DayLog) *int { return entry.MorningArousal })

	severitySum, severityCount := 0, 0
	napMinutes := 0
	for _, event := range events {
		switch event.Type {
		case models.EventTypeSymptom:
			severitySum += event.Severity
			severityCount++
		case models.EventTypeNap:
			napMinutes += event.Severity
		}
	}
	if severityCount > 0 {
		summary.AverageSymptomSeverity = float64(severitySum) / float64(severityCount)
	}
	summary.TotalNapMinutes = napMinutes
	return summary, nil
}

func (service *ReportService) BuildReportRequest(from string, to string) (ReportRequest, error) {
	summary, err := service.BuildSummary(from, to)
	if err != nil {
		return ReportRequest{}, err
	}
	dayLogs, err := service.days.ListRange(from, to)
	if err != nil {
		return ReportRequest{}, err
	}
	regimens, err := service.regimens.ListAll()
	if err != nil {
		return ReportRequest{}, err
	}
	medicines, err := service.medicines.List()
	if err != nil {
		return ReportRequest{}, err
	}
	return ReportRequest{
		Summary:   summary,
		DayLogs:   dayLogs,
		Regimens:  regimens,
		Medicines: medicines,
	}, nil
}

func (service *ReportService) BuildEchoRequest(date string, dayLog *models.DayLog) (EchoRequest, error) {
	events, err := service.events.ListByDate(date)
	if err != nil {
		return EchoRequest{}, err
	}
	return EchoRequest{Date: date, DayLog: dayLog, Events: events}, nil
}

// rankByName counts events of one type per name and orders the result most
// frequent first, name order breaking ties so rankings are stable.
func rankByName(events []models.EventLog, eventType string) []NameCount {
	counts := make(map[string]int)
	for _, event := range events {
		if event.Type == eventType {
			counts[event.Name]++
		}
	}
	ranking := make([]NameCount, 0, len(counts))
	for name, count := range counts {
		ranking = append(ranking, NameCount{Name: name, Count: count})
	}
	sort.Slice(ranking, func(left int, right int) bool {
		if ranking[left].Count != ranking[right].Count {
			return ranking[left].Count > ranking[right].Count
		}
		return ranking[left].Name < ranking[right].Name
	})
	return ranking
}

func sleepStats(dayLogs []models.DayLog) SleepStats {
	stats := SleepStats{}
	total := 0
	for _, entry := range dayLogs {
		if entry.SleepStart == nil || entry.SleepEnd == nil {
			continue
		}
		duration := entry.SleepEnd.Sub(*entry.SleepStart)
		if duration <= 0 {
			continue
		}
		minutes := int(duration / time.Minute)
		total += minutes
		if stats.Nights == 0 || minutes < stats.MinMinutes {
			stats.MinMinutes = minutes
		}
		if minutes > stats.MaxMinutes {
			stats.MaxMinutes = minutes
		}
		stats.Nights++
	}
	if stats.Nights > 0 {
		stats.AverageMinutes = float64(total) / float64(stats.Nights)
	}
	return stats
}

func averagePointer(dayLogs []models.DayLog, pick func(models.DayLog) *int) float64 {
	sum, count := 0, 0
	for _, entry := range dayLogs {
		if value := pick(entry); value != nil {
			sum += *value
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return float64(sum) / float64(count)
}
