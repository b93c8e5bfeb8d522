package weather

import "math"

// Defaults substituted for missing or malformed fields.
const (
	DefaultLocation    = "Singapore"
	DefaultTemperature = 26
	DefaultCondition   = "Partly Cloudy"
	DefaultHumidity    = 75
	DefaultWindSpeed   = 12
)

// ProcessWeatherData combines the three raw payloads into a Snapshot.
// Missing or malformed fields fall back to defaults; it never fails.
func ProcessWeatherData(location string, temp RawTemperature, fourDay RawFourDayForecast, today RawTodayForecast) Snapshot {
	s, _ := processWeatherData(location, temp, fourDay, today)
	return s
}

// Snapshot fields reported by processWeatherData when they were defaulted.
const (
	fieldTemperature = "temperature"
	fieldCondition   = "condition"
	fieldHumidity    = "humidity"
	fieldWindSpeed   = "windSpeed"
	fieldForecast    = "forecast"
)

// processWeatherData is ProcessWeatherData that also lists the fields that
// fell back to their defaults, in snapshot order.
func processWeatherData(location string, temp RawTemperature, fourDay RawFourDayForecast, today RawTodayForecast) (Snapshot, []string) {
	general := todayGeneral(today)

	var defaulted []string
	note := func(field string, ok bool) {
		if !ok {
			defaulted = append(defaulted, field)
		}
	}

	temperature, ok := currentTemperature(temp)
	note(fieldTemperature, ok)
	note(fieldCondition, general.Forecast != "")
	humidity, ok := humidityReading(general.RelativeHumidity)
	note(fieldHumidity, ok)
	wind, ok := windReading(general.Wind)
	note(fieldWindSpeed, ok)
	forecast, ok := processForecast(fourDay)
	note(fieldForecast, ok)

	return Snapshot{
		Location:    location,
		Temperature: temperature,
		Condition:   CurrentCondition(today),
		Humidity:    humidity,
		WindSpeed:   wind,
		Forecast:    forecast,
	}, defaulted
}

// CurrentTemperature averages the station readings of the first item,
// rounded to the nearest degree.
func CurrentTemperature(temp RawTemperature) int {
	v, _ := currentTemperature(temp)
	return v
}

func currentTemperature(temp RawTemperature) (int, bool) {
	if len(temp.Items) == 0 || len(temp.Items[0].Readings) == 0 {
		return DefaultTemperature, false
	}

	readings := temp.Items[0].Readings
	var sum float64
	for _, r := range readings {
		sum += r.Value
	}
	return roundHalfUp(sum / float64(len(readings))), true
}

// CurrentCondition returns the 24-hour general forecast text.
func CurrentCondition(today RawTodayForecast) string {
	if c := todayGeneral(today).Forecast; c != "" {
		return c
	}
	return DefaultCondition
}

func todayGeneral(today RawTodayForecast) GeneralForecast {
	if len(today.Items) == 0 {
		return GeneralForecast{}
	}
	return today.Items[0].General
}

// roundHalfUp rounds .5 toward positive infinity, saturating at the int
// bounds.
func roundHalfUp(v float64) int {
	r := math.Floor(v + 0.5)
	switch {
	case r >= math.MaxInt:
		return math.MaxInt
	case r <= math.MinInt:
		return math.MinInt
	}
	return int(r)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
