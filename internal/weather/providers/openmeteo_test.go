package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMeteoFetchDaily_Success(t *testing.T) {
	archive := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2026-08-28", r.URL.Query().Get("start_date"))
		assert.Equal(t, "2026-08-28", r.URL.Query().Get("end_date"))
		assert.Equal(t, "Europe/Istanbul", r.URL.Query().Get("timezone"))
		w.Write([]byte(`{"daily":{
			"temperature_2m_min":[18.0],
			"temperature_2m_max":[26.9],
			"precipitation_sum":[2.1]
		}}`))
	}))
	defer archive.Close()

	forecast := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("forecast_days"))
		w.Write([]byte(`{"daily":{
			"temperature_2m_min":[17.5,19.0],
			"temperature_2m_max":[25.0,28.5],
			"precipitation_sum":[0.0,4.2],
			"weathercode":[1,63]
		}}`))
	}))
	defer forecast.Close()

	p := NewOpenMeteoProvider(http.DefaultClient, testLogger())
	p.archiveURL = archive.URL
	p.forecastURL = forecast.URL

	dw, err := p.FetchDaily(context.Background(), testLoc, refDate())
	require.NoError(t, err)

	assert.Equal(t, "open-meteo", dw.Source)
	assert.Equal(t, 18.0, dw.YesterdayMin)
	assert.Equal(t, 26.9, dw.YesterdayMax)
	assert.Equal(t, 2.1, dw.YesterdayPrecip)
	assert.Equal(t, 19.0, dw.TomorrowMin)
	assert.Equal(t, 28.5, dw.TomorrowMax)
	assert.Equal(t, 4.2, dw.TomorrowPrecip)
	assert.Equal(t, "rain", dw.TomorrowCondition)
}

func TestOpenMeteoFetchDaily_UnknownWeatherCode(t *testing.T) {
	archive := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"daily":{"temperature_2m_min":[18.0],"temperature_2m_max":[26.9],"precipitation_sum":[0]}}`))
	}))
	defer archive.Close()

	forecast := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"daily":{
			"temperature_2m_min":[17.5,19.0],
			"temperature_2m_max":[25.0,28.5],
			"precipitation_sum":[0,0],
			"weathercode":[0,42]
		}}`))
	}))
	defer forecast.Close()

	p := NewOpenMeteoProvider(http.DefaultClient, testLogger())
	p.archiveURL = archive.URL
	p.forecastURL = forecast.URL

	dw, err := p.FetchDaily(context.Background(), testLoc, refDate())
	require.NoError(t, err)
	assert.Equal(t, "—", dw.TomorrowCondition)
}

func TestOpenMeteoFetchDaily_ShortDailyArraysAreFailure(t *testing.T) {
	archive := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"daily":{"temperature_2m_min":[18.0],"temperature_2m_max":[26.9],"precipitation_sum":[0]}}`))
	}))
	defer archive.Close()

	// Only today present; tomorrow missing.
	forecast := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"daily":{"temperature_2m_min":[17.5],"temperature_2m_max":[25.0],"precipitation_sum":[0],"weathercode":[0]}}`))
	}))
	defer forecast.Close()

	p := NewOpenMeteoProvider(http.DefaultClient, testLogger())
	p.archiveURL = archive.URL
	p.forecastURL = forecast.URL

	_, err := p.FetchDaily(context.Background(), testLoc, refDate())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing value")
}

func TestOpenMeteoFetchDaily_NullTemperatureIsFailure(t *testing.T) {
	archive := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"daily":{"temperature_2m_min":[null],"temperature_2m_max":[null],"precipitation_sum":[0]}}`))
	}))
	defer archive.Close()

	p := NewOpenMeteoProvider(http.DefaultClient, testLogger())
	p.archiveURL = archive.URL

	_, err := p.FetchDaily(context.Background(), testLoc, refDate())
	require.Error(t, err)
}

func TestOpenMeteoFetchDaily_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewOpenMeteoProvider(http.DefaultClient, testLogger())
	p.archiveURL = srv.URL
	p.forecastURL = srv.URL

	_, err := p.FetchDaily(context.Background(), testLoc, refDate())
	require.Error(t, err)
}
