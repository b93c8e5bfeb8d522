package weather

// FallbackCondition marks a snapshot that carries no live data.
const FallbackCondition = "Data Unavailable"

// DefaultForecast is the outlook used when the 4-day payload is unusable.
func DefaultForecast() [ForecastLength]ForecastDay {
	return [ForecastLength]ForecastDay{
		{Label: "Today", Temperature: 26, Condition: "Partly Cloudy", Icon: IconPartlyCloudy},
		{Label: "Tomorrow", Temperature: 28, Condition: "Sunny", Icon: IconSun},
		{Label: "Day 3", Temperature: 24, Condition: "Light Rain", Icon: IconRain},
		{Label: "Day 4", Temperature: 27, Condition: "Partly Cloudy", Icon: IconPartlyCloudy},
	}
}

// FallbackSnapshot is substituted whenever fetching fails or times out.
func FallbackSnapshot() Snapshot {
	return Snapshot{
		Location:    DefaultLocation,
		Temperature: DefaultTemperature,
		Condition:   FallbackCondition,
		Humidity:    DefaultHumidity,
		WindSpeed:   DefaultWindSpeed,
		Forecast:    DefaultForecast(),
	}
}
