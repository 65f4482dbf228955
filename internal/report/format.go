// Package report renders the daily weather report as a Telegram Markdown
// message. Formatting is pure: given the same report and date the output is
// identical, with no clock, locale or randomness involved.
package report

import (
	"fmt"
	"strings"

	"github.com/akarakus27/weather-telegram-bot/internal/weather"
)

// Condition markers appended to the tomorrow line. They are independent and
// may co-occur.
const (
	RainMarker = "☔"
	ColdMarker = "❄"
	HeatMarker = "🔥"
)

// Marker thresholds: rain on any precipitation at all, cold below 5°C,
// heat above 30°C.
const (
	coldBelowC = 5.0
	heatAboveC = 30.0
)

// Format renders the whole message. yesterdayDate is the already-computed
// YYYY-MM-DD date the observed lines refer to.
func Format(r weather.Report, yesterdayDate string) string {
	var b strings.Builder

	b.WriteString("🌤️ *Daily Weather Summary*\n")
	fmt.Fprintf(&b, "_%s (yesterday) / tomorrow_\n", yesterdayDate)

	for _, lr := range r {
		b.WriteString("\n")
		fmt.Fprintf(&b, "*%s*\n", lr.Location.Name)

		if lr.Weather == nil {
			b.WriteString("  data unavailable\n")
			continue
		}

		dw := lr.Weather
		fmt.Fprintf(&b, "  📅 Yesterday: %.1f°C - %.1f°C, %.1f mm precipitation\n",
			dw.YesterdayMin, dw.YesterdayMax, dw.YesterdayPrecip)
		fmt.Fprintf(&b, "  📆 Tomorrow: %.1f°C - %.1f°C, %s%s\n",
			dw.TomorrowMin, dw.TomorrowMax, dw.TomorrowCondition, markers(dw))
	}

	return strings.TrimRight(b.String(), "\n")
}

func markers(dw *weather.DailyWeather) string {
	var b strings.Builder
	if dw.TomorrowPrecip > 0 {
		b.WriteString(" " + RainMarker)
	}
	if dw.TomorrowMin < coldBelowC {
		b.WriteString(" " + ColdMarker)
	}
	if dw.TomorrowMax > heatAboveC {
		b.WriteString(" " + HeatMarker)
	}
	return b.String()
}
