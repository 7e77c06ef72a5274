package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/koe-app/koe/internal/models"
)

type stubGenerator struct {
	text    string
	err     error
	route   string
	payload any
}

func (stub *stubGenerator) Generate(ctx context.Context, route string, payload any) (string, error) {
	stub.route = route
	stub.payload = payload
	return stub.text, stub.err
}

func newEchoFixture(t *testing.T, generator TextGenerator) (*EchoService, *DayService) {
	t.Helper()
	store := newTestStore(t)
	clock := newManualClock(time.Date(2026, 8, 27, 20, 0, 0, 0, time.UTC))
	days := NewDayService(store, time.UTC, clock.Now)
	reports := NewReportService(store.DayLogs(), store.EventLogs(), store.Regimens(), store.Medicines())
	return NewEchoService(reports, days, generator), days
}

func TestGenerateEchoPersistsSummaryOnDayLog(t *testing.T) {
	t.Parallel()

	generator := &stubGenerator{text: "a gentle day, mostly"}
	service, days := newEchoFixture(t, generator)

	if _, err := days.Upsert("2026-08-27", models.DayLogPatch{Note: stringPointer("tired")}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	text, err := service.GenerateEcho(context.Background(), "2026-08-27")
	if err != nil {
		t.Fatalf("generate echo: %v", err)
	}
	if text != "a gentle day, mostly" {
		t.Fatalf("text = %q", text)
	}
	if generator.route != "echo" {
		t.Fatalf("route = %q, want echo", generator.route)
	}

	entry, found, err := days.Fetch("2026-08-27")
	if err != nil || !found {
		t.Fatalf("fetch: found=%v err=%v", found, err)
	}
	if entry.EchoSummary != "a gentle day, mostly" {
		t.Fatalf("echo summary = %q", entry.EchoSummary)
	}
	if entry.Note != "tired" {
		t.Fatalf("echo write damaged other fields: %+v", entry)
	}
}

func TestGenerateEchoFailureLeavesDayUntouched(t *testing.T) {
	t.Parallel()

	generator := &stubGenerator{err: ErrRemoteService}
	service, days := newEchoFixture(t, generator)

	if _, err := days.Upsert("2026-08-27", models.DayLogPatch{Note: stringPointer("tired")}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := service.GenerateEcho(context.Background(), "2026-08-27"); !errors.Is(err, ErrRemoteService) {
		t.Fatalf("error = %v, want ErrRemoteService", err)
	}

	entry, _, err := days.Fetch("2026-08-27")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if entry.EchoSummary != "" {
		t.Fatalf("failed generation stored a summary: %q", entry.EchoSummary)
	}
}

func TestGenerateEchoRejectsUnsafeReply(t *testing.T) {
	t.Parallel()

	generator := &stubGenerator{text: "nice day <script>alert(1)</script>"}
	service, days := newEchoFixture(t, generator)

	if _, err := service.GenerateEcho(context.Background(), "2026-08-27"); err == nil {
		t.Fatal("reply with script tag accepted")
	}
	_, found, err := days.Fetch("2026-08-27")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if found {
		t.Fatal("rejected reply created a day record")
	}
}

func TestGenerateReportUsesReportRoute(t *testing.T) {
	t.Parallel()

	generator := &stubGenerator{text: "your month in review"}
	service, _ := newEchoFixture(t, generator)

	text, err := service.GenerateReport(context.Background(), "2026-08-01", "2026-08-27")
	if err != nil {
		t.Fatalf("generate report: %v", err)
	}
	if text != "your month in review" {
		t.Fatalf("text = %q", text)
	}
	if generator.route != "report" {
		t.Fatalf("route = %q, want report", generator.route)
	}
	request, ok := generator.payload.(ReportRequest)
	if !ok {
		t.Fatalf("payload type = %T, want ReportRequest", generator.payload)
	}
	if request.Summary.From != "2026-08-01" || request.Summary.To != "2026-08-27" {
		t.Fatalf("summary period = %s..%s", request.Summary.From, request.Summary.To)
	}
}
