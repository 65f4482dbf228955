package weather

import (
	"context"
	"fmt"
	"time"
)

// Provider abstracts a weather data source (e.g. OpenWeatherMap, Open-Meteo).
// ref is the current time in the report timezone; implementations derive
// yesterday (ref-1d) and tomorrow (ref+1d) from it.
type Provider interface {
	Name() string
	FetchDaily(ctx context.Context, loc Location, ref time.Time) (DailyWeather, error)
}

// FetchError reports that every provider failed for a location. It wraps the
// last error encountered.
type FetchError struct {
	Location string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch weather for %s: %v", e.Location, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
