package weather

// Location represents a place for which the daily report is built.
type Location struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Key returns a canonical string key for indexing this location in logs and stores.
func (l Location) Key() string {
	return l.Name
}

// DefaultLocations are the two cities the daily summary covers, in report order.
var DefaultLocations = []Location{
	{Name: "Gebze", Lat: 40.8028, Lon: 29.4307},
	{Name: "İstanbul", Lat: 41.0082, Lon: 28.9784},
}

// DailyWeather is the normalized view a provider returns for one location:
// yesterday's observed aggregates and tomorrow's forecast.
// Providers must fail instead of returning a partially populated value.
type DailyWeather struct {
	Source string `json:"source"`

	YesterdayMin    float64 `json:"yesterdayMin"`
	YesterdayMax    float64 `json:"yesterdayMax"`
	YesterdayPrecip float64 `json:"yesterdayPrecipMm"`

	TomorrowMin       float64 `json:"tomorrowMin"`
	TomorrowMax       float64 `json:"tomorrowMax"`
	TomorrowPrecip    float64 `json:"tomorrowPrecipMm"`
	TomorrowCondition string  `json:"tomorrowCondition"`
}

// LocationReport is the per-location outcome of a run: either a populated
// DailyWeather or the error that made both providers fail.
type LocationReport struct {
	Location Location
	Weather  *DailyWeather
	Err      error
}

// Report holds the per-location outcomes in the fixed report order.
type Report []LocationReport
