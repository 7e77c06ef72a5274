package api

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/koe-app/koe/internal/models"
	"github.com/koe-app/koe/internal/services"
	"github.com/valyala/fasthttp"
)

type todayView struct {
	Date   string            `json:"date"`
	DayLog *models.DayLog    `json:"dayLog,omitempty"`
	Events []models.EventLog `json:"events"`
}

// LiveToday streams today's journal view as server-sent events. The first
// event arrives as soon as the initial read resolves; every committed write
// to day logs or event logs pushes a fresh snapshot. The subscription dies
// with the connection.
func (handler *Handler) LiveToday(c *fiber.Ctx) error {
	date := services.DateKey(time.Now(), handler.location)

	subscription := handler.store.Hub().Subscribe(
		[]string{models.TableDayLogs, models.TableEventLogs},
		func(ctx context.Context) (any, error) {
			return handler.readTodayView(date)
		},
	)

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set("Connection", "keep-alive")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(writer *bufio.Writer) {
		defer subscription.Cancel()
		for {
			select {
			case <-subscription.Done():
				return
			case result := <-subscription.Updates():
				if result.Err != nil {
					fmt.Fprintf(writer, "event: error\ndata: %q\n\n", result.Err.Error())
				} else {
					payload, err := json.Marshal(result.Value)
					if err != nil {
						continue
					}
					fmt.Fprintf(writer, "data: %s\n\n", payload)
				}
				if err := writer.Flush(); err != nil {
					// Client went away.
					return
				}
			}
		}
	}))
	return nil
}

func (handler *Handler) readTodayView(date string) (todayView, error) {
	view := todayView{Date: date}
	entry, found, err := handler.days.Fetch(date)
	if err != nil {
		return todayView{}, err
	}
	if found {
		view.DayLog = &entry
	}
	view.Events, err = handler.store.EventLogs().ListByDate(date)
	if err != nil {
		return todayView{}, err
	}
	return view, nil
}
