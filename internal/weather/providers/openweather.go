package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/akarakus27/weather-telegram-bot/internal/weather"
)

// OpenWeatherProvider is the primary (keyed) provider, backed by the
// OpenWeather One Call 3.0 API: the day_summary endpoint for yesterday's
// observed aggregates and the onecall endpoint for tomorrow's forecast.
type OpenWeatherProvider struct {
	name          string
	apiKey        string
	daySummaryURL string
	onecallURL    string
	client        *http.Client
	circuit       *gobreaker.CircuitBreaker
	log           *zap.SugaredLogger
}

func NewOpenWeatherProvider(client *http.Client, apiKey string, log *zap.SugaredLogger) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		name:          "openweather",
		apiKey:        apiKey,
		daySummaryURL: "https://api.openweathermap.org/data/3.0/onecall/day_summary",
		onecallURL:    "https://api.openweathermap.org/data/3.0/onecall",
		client:        client,
		circuit:       newCircuitBreaker("openweather"),
		log:           log,
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

func (p *OpenWeatherProvider) FetchDaily(ctx context.Context, loc weather.Location, ref time.Time) (weather.DailyWeather, error) {
	if p.apiKey == "" {
		return weather.DailyWeather{}, fmt.Errorf("openweather api key is not configured")
	}

	yesterday := ref.AddDate(0, 0, -1).Format("2006-01-02")

	dw := weather.DailyWeather{Source: p.name}

	if err := p.fetchYesterday(ctx, loc, yesterday, &dw); err != nil {
		return weather.DailyWeather{}, fmt.Errorf("day_summary: %w", err)
	}
	if err := p.fetchTomorrow(ctx, loc, &dw); err != nil {
		return weather.DailyWeather{}, fmt.Errorf("onecall: %w", err)
	}

	return dw, nil
}

func (p *OpenWeatherProvider) fetchYesterday(ctx context.Context, loc weather.Location, date string, dw *weather.DailyWeather) error {
	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%f", loc.Lat))
	values.Set("lon", fmt.Sprintf("%f", loc.Lon))
	values.Set("date", date)
	values.Set("units", "metric")
	values.Set("tz", "+03:00")
	values.Set("appid", p.apiKey)

	p.log.Debugw("openweather day_summary request", "location", loc.Key(), "date", date)

	body, err := doJSONRequest(ctx, p.client, p.circuit, fmt.Sprintf("%s?%s", p.daySummaryURL, values.Encode()))
	if err != nil {
		return err
	}

	var payload struct {
		Temperature struct {
			Min *float64 `json:"min"`
			Max *float64 `json:"max"`
		} `json:"temperature"`
		Precipitation struct {
			Total *float64 `json:"total"`
		} `json:"precipitation"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}

	// Absent fields are a fetch failure, not a valid zero.
	if payload.Temperature.Min == nil || payload.Temperature.Max == nil {
		return fmt.Errorf("response missing temperature range")
	}

	dw.YesterdayMin = *payload.Temperature.Min
	dw.YesterdayMax = *payload.Temperature.Max
	if payload.Precipitation.Total != nil {
		dw.YesterdayPrecip = *payload.Precipitation.Total
	}
	return nil
}

func (p *OpenWeatherProvider) fetchTomorrow(ctx context.Context, loc weather.Location, dw *weather.DailyWeather) error {
	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%f", loc.Lat))
	values.Set("lon", fmt.Sprintf("%f", loc.Lon))
	values.Set("exclude", "minutely,hourly")
	values.Set("units", "metric")
	values.Set("appid", p.apiKey)

	p.log.Debugw("openweather onecall request", "location", loc.Key())

	body, err := doJSONRequest(ctx, p.client, p.circuit, fmt.Sprintf("%s?%s", p.onecallURL, values.Encode()))
	if err != nil {
		return err
	}

	var payload struct {
		Daily []struct {
			Temp struct {
				Min *float64 `json:"min"`
				Max *float64 `json:"max"`
			} `json:"temp"`
			Weather []struct {
				Description string `json:"description"`
			} `json:"weather"`
			Rain float64 `json:"rain"`
		} `json:"daily"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}

	// daily[0] is today; tomorrow must be present.
	if len(payload.Daily) < 2 {
		return fmt.Errorf("insufficient daily forecast: %d entries", len(payload.Daily))
	}

	tomorrow := payload.Daily[1]
	if tomorrow.Temp.Min == nil || tomorrow.Temp.Max == nil {
		return fmt.Errorf("forecast missing temperature range")
	}

	dw.TomorrowMin = *tomorrow.Temp.Min
	dw.TomorrowMax = *tomorrow.Temp.Max
	dw.TomorrowPrecip = tomorrow.Rain
	if len(tomorrow.Weather) > 0 {
		dw.TomorrowCondition = tomorrow.Weather[0].Description
	} else {
		dw.TomorrowCondition = "—"
	}
	return nil
}
