package services

import (
	"context"

	"github.com/koe-app/koe/internal/models"
)

// TextGenerator is the slice of the LLM client the echo service needs.
type TextGenerator interface {
	Generate(ctx context.Context, route string, payload any) (string, error)
}

// EchoService produces the two generated-text features: the single-day
// "echo" reflection and the period report narrative. Generated echoes are
// written back onto the day log through the normal validated upsert, so a
// reply containing rejected content is discarded, not stored.
type EchoService struct {
	reports   *ReportService
	days      *DayService
	generator TextGenerator
}

func NewEchoService(reports *ReportService, days *DayService, generator TextGenerator) *EchoService {
	return &EchoService{reports: reports, days: days, generator: generator}
}

// GenerateEcho builds the day's payload, asks the collaborator for a
// reflection and persists it as the day's echo summary. Concurrent
// generations for one date resolve last-write-wins.
func (service *EchoService) GenerateEcho(ctx context.Context, date string) (string, error) {
	entry, found, err := service.days.Fetch(date)
	if err != nil {
		return "", err
	}
	var dayLog *models.DayLog
	if found {
		dayLog = &entry
	}
	request, err := service.reports.BuildEchoRequest(date, dayLog)
	if err != nil {
		return "", err
	}
	text, err := service.generator.Generate(ctx, "echo", request)
	if err != nil {
		return "", err
	}
	if _, err := service.days.Upsert(date, models.DayLogPatch{EchoSummary: &text}); err != nil {
		return "", err
	}
	return text, nil
}

// GenerateReport builds the period payload and returns the generated
// narrative. Nothing is persisted; the report is a view.
func (service *EchoService) GenerateReport(ctx context.Context, from string, to string) (string, error) {
	request, err := service.reports.BuildReportRequest(from, to)
	if err != nil {
		return "", err
	}
	return service.generator.Generate(ctx, "report", request)
}
