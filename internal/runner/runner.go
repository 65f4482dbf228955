// Package runner executes one full run of the pipeline: fetch both
// locations, format the summary, deliver it, record the outcome.
package runner

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/akarakus27/weather-telegram-bot/internal/report"
	"github.com/akarakus27/weather-telegram-bot/internal/store"
	"github.com/akarakus27/weather-telegram-bot/internal/weather"
)

// Notifier is what the runner needs from the delivery side.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// Runner wires the weather service, the formatter and the notifier into a
// single run.
type Runner struct {
	service   *weather.Service
	notifier  Notifier
	store     *store.MemoryStore
	locations []weather.Location
	log       *zap.SugaredLogger
}

func New(service *weather.Service, notifier Notifier, st *store.MemoryStore, locations []weather.Location, log *zap.SugaredLogger) *Runner {
	return &Runner{
		service:   service,
		notifier:  notifier,
		store:     st,
		locations: locations,
		log:       log,
	}
}

// reportLocation returns the timezone the report dates are computed in.
// Falls back to a fixed UTC+3 when tzdata is unavailable.
func reportLocation() *time.Location {
	tz, err := time.LoadLocation("Europe/Istanbul")
	if err != nil {
		return time.FixedZone("UTC+3", 3*3600)
	}
	return tz
}

// Run executes one run. A location whose providers all failed degrades to an
// "unavailable" line in the message; only a delivery failure fails the run.
func (r *Runner) Run(ctx context.Context) error {
	started := time.Now()
	ref := started.In(reportLocation())
	yesterday := ref.AddDate(0, 0, -1).Format("2006-01-02")

	rec := store.RunRecord{
		ID:        uuid.NewString(),
		StartedAt: started,
	}

	r.log.Infow("run started", "run", rec.ID, "yesterday", yesterday)

	rep := r.service.BuildReport(ctx, r.locations, ref)
	for _, lr := range rep {
		status := store.LocationStatus{Name: lr.Location.Name, OK: lr.Err == nil}
		if lr.Weather != nil {
			status.Source = lr.Weather.Source
		}
		if lr.Err != nil {
			status.Err = lr.Err.Error()
		}
		rec.Locations = append(rec.Locations, status)
	}

	msg := report.Format(rep, yesterday)
	rec.Message = msg

	err := r.notifier.Send(ctx, msg)
	rec.FinishedAt = time.Now()
	if err != nil {
		rec.Err = err.Error()
		r.store.SaveRun(rec)
		r.log.Errorw("run failed", "run", rec.ID, "err", err)
		return err
	}

	rec.Delivered = true
	r.store.SaveRun(rec)
	r.log.Infow("run finished", "run", rec.ID, "duration", rec.FinishedAt.Sub(rec.StartedAt))
	return nil
}
