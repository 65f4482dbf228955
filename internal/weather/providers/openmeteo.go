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

// OpenMeteoProvider is the keyless fallback provider. It uses the Open-Meteo
// archive API for yesterday's aggregates and the forecast API for tomorrow.
type OpenMeteoProvider struct {
	name        string
	archiveURL  string
	forecastURL string
	client      *http.Client
	circuit     *gobreaker.CircuitBreaker
	log         *zap.SugaredLogger
}

func NewOpenMeteoProvider(client *http.Client, log *zap.SugaredLogger) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		name:        "open-meteo",
		archiveURL:  "https://archive-api.open-meteo.com/v1/archive",
		forecastURL: "https://api.open-meteo.com/v1/forecast",
		client:      client,
		circuit:     newCircuitBreaker("open-meteo"),
		log:         log,
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

// openMeteoDaily is the daily aggregate block shared by the archive and
// forecast endpoints.
type openMeteoDaily struct {
	Temperature2mMin []*float64 `json:"temperature_2m_min"`
	Temperature2mMax []*float64 `json:"temperature_2m_max"`
	PrecipitationSum []*float64 `json:"precipitation_sum"`
	WeatherCode      []*int     `json:"weathercode"`
}

func (p *OpenMeteoProvider) FetchDaily(ctx context.Context, loc weather.Location, ref time.Time) (weather.DailyWeather, error) {
	yesterday := ref.AddDate(0, 0, -1).Format("2006-01-02")

	dw := weather.DailyWeather{Source: p.name}

	if err := p.fetchYesterday(ctx, loc, yesterday, &dw); err != nil {
		return weather.DailyWeather{}, fmt.Errorf("archive: %w", err)
	}
	if err := p.fetchTomorrow(ctx, loc, &dw); err != nil {
		return weather.DailyWeather{}, fmt.Errorf("forecast: %w", err)
	}

	return dw, nil
}

func (p *OpenMeteoProvider) fetchYesterday(ctx context.Context, loc weather.Location, date string, dw *weather.DailyWeather) error {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", loc.Lat))
	values.Set("longitude", fmt.Sprintf("%f", loc.Lon))
	values.Set("start_date", date)
	values.Set("end_date", date)
	values.Set("daily", "temperature_2m_min,temperature_2m_max,precipitation_sum")
	values.Set("timezone", "Europe/Istanbul")

	p.log.Debugw("open-meteo archive request", "location", loc.Key(), "date", date)

	body, err := doJSONRequest(ctx, p.client, p.circuit, fmt.Sprintf("%s?%s", p.archiveURL, values.Encode()))
	if err != nil {
		return err
	}

	var payload struct {
		Daily openMeteoDaily `json:"daily"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}

	tmin, err := dailyValue(payload.Daily.Temperature2mMin, 0)
	if err != nil {
		return fmt.Errorf("temperature_2m_min: %w", err)
	}
	tmax, err := dailyValue(payload.Daily.Temperature2mMax, 0)
	if err != nil {
		return fmt.Errorf("temperature_2m_max: %w", err)
	}

	dw.YesterdayMin = tmin
	dw.YesterdayMax = tmax
	if precip, err := dailyValue(payload.Daily.PrecipitationSum, 0); err == nil {
		dw.YesterdayPrecip = precip
	}
	return nil
}

func (p *OpenMeteoProvider) fetchTomorrow(ctx context.Context, loc weather.Location, dw *weather.DailyWeather) error {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", loc.Lat))
	values.Set("longitude", fmt.Sprintf("%f", loc.Lon))
	values.Set("daily", "temperature_2m_min,temperature_2m_max,weathercode,precipitation_sum")
	values.Set("forecast_days", "2")
	values.Set("timezone", "Europe/Istanbul")

	p.log.Debugw("open-meteo forecast request", "location", loc.Key())

	body, err := doJSONRequest(ctx, p.client, p.circuit, fmt.Sprintf("%s?%s", p.forecastURL, values.Encode()))
	if err != nil {
		return err
	}

	var payload struct {
		Daily openMeteoDaily `json:"daily"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}

	// Index 0 is today, index 1 tomorrow.
	tmin, err := dailyValue(payload.Daily.Temperature2mMin, 1)
	if err != nil {
		return fmt.Errorf("temperature_2m_min: %w", err)
	}
	tmax, err := dailyValue(payload.Daily.Temperature2mMax, 1)
	if err != nil {
		return fmt.Errorf("temperature_2m_max: %w", err)
	}

	dw.TomorrowMin = tmin
	dw.TomorrowMax = tmax
	if precip, err := dailyValue(payload.Daily.PrecipitationSum, 1); err == nil {
		dw.TomorrowPrecip = precip
	}

	dw.TomorrowCondition = "—"
	if len(payload.Daily.WeatherCode) > 1 && payload.Daily.WeatherCode[1] != nil {
		dw.TomorrowCondition = describeWeatherCode(*payload.Daily.WeatherCode[1])
	}
	return nil
}

// dailyValue extracts a value from an Open-Meteo daily array, treating a
// short array or a null entry as missing data.
func dailyValue(arr []*float64, idx int) (float64, error) {
	if len(arr) <= idx || arr[idx] == nil {
		return 0, fmt.Errorf("missing value at index %d", idx)
	}
	return *arr[idx], nil
}

// describeWeatherCode maps WMO weather codes to a short condition text.
func describeWeatherCode(code int) string {
	switch {
	case code == 0:
		return "clear"
	case code == 1:
		return "mostly clear"
	case code == 2:
		return "partly cloudy"
	case code == 3:
		return "overcast"
	case code == 45 || code == 48:
		return "fog"
	case code >= 51 && code <= 57:
		return "drizzle"
	case code >= 61 && code <= 67:
		return "rain"
	case code >= 71 && code <= 77:
		return "snow"
	case code >= 80 && code <= 82:
		return "rain showers"
	case code == 85 || code == 86:
		return "snow showers"
	case code >= 95:
		return "thunderstorm"
	default:
		return "—"
	}
}
