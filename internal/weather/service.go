package weather

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Service orchestrates the ordered primary/fallback handoff between the two
// configured providers and builds the per-location report.
type Service struct {
	primary  Provider
	fallback Provider
	log      *zap.SugaredLogger
}

// NewService creates a new Service. The fallback provider may be nil, in
// which case a primary failure is final.
func NewService(primary, fallback Provider, log *zap.SugaredLogger) *Service {
	return &Service{
		primary:  primary,
		fallback: fallback,
		log:      log,
	}
}

// Fetch returns the daily weather for loc. The primary provider is tried
// first; on any failure the fallback is tried exactly once. If both fail the
// returned error is a *FetchError wrapping the last error encountered.
func (s *Service) Fetch(ctx context.Context, loc Location, ref time.Time) (DailyWeather, error) {
	dw, err := s.primary.FetchDaily(ctx, loc, ref)
	if err == nil {
		return dw, nil
	}
	s.log.Warnw("primary provider failed, trying fallback",
		"provider", s.primary.Name(), "location", loc.Key(), "err", err)

	if s.fallback == nil {
		return DailyWeather{}, &FetchError{Location: loc.Key(), Err: err}
	}

	dw, err = s.fallback.FetchDaily(ctx, loc, ref)
	if err != nil {
		s.log.Errorw("fallback provider failed",
			"provider", s.fallback.Name(), "location", loc.Key(), "err", err)
		return DailyWeather{}, &FetchError{Location: loc.Key(), Err: err}
	}
	return dw, nil
}

// BuildReport fetches the locations sequentially and collects per-location
// outcomes. A failed location is recorded in its report entry; it never
// aborts the remaining locations.
func (s *Service) BuildReport(ctx context.Context, locs []Location, ref time.Time) Report {
	report := make(Report, 0, len(locs))

	for _, loc := range locs {
		dw, err := s.Fetch(ctx, loc, ref)
		if err != nil {
			report = append(report, LocationReport{Location: loc, Err: err})
			continue
		}
		s.log.Infow("fetched daily weather",
			"location", loc.Key(), "source", dw.Source)
		report = append(report, LocationReport{Location: loc, Weather: &dw})
	}

	return report
}
