package weather

import (
	"time"
)

// ForecastLength is the number of days every Snapshot carries.
const ForecastLength = 4

// Icon is a symbolic weather or advisory icon category.
type Icon string

// Condition icons chosen from free-text forecast conditions.
const (
	IconSun          Icon = "sun"
	IconCloudy       Icon = "cloudy"
	IconPartlyCloudy Icon = "partly-cloudy"
	IconRain         Icon = "rain"
	IconStorm        Icon = "storm"
	IconSmog         Icon = "smog"
)

// Advisory icons, one per advisory rule.
const (
	IconWarning     Icon = "warning"
	IconUmbrella    Icon = "umbrella"
	IconThermometer Icon = "thermometer"
	IconHumidity    Icon = "humidity"
	IconThumbsUp    Icon = "thumbs-up"
	IconCheck       Icon = "check"
)

// ForecastDay is one normalized entry of the 4-day outlook.
type ForecastDay struct {
	Label       string `json:"day"`
	Temperature int    `json:"temperature"`
	Condition   string `json:"condition"`
	Icon        Icon   `json:"icon"`
}

// Snapshot is the canonical weather reading built by one pipeline run.
// Humidity is a percentage in [0,100]; WindSpeed is km/h in [0,50].
type Snapshot struct {
	Location    string                      `json:"location"`
	Temperature int                         `json:"temperature"`
	Condition   string                      `json:"condition"`
	Humidity    int                         `json:"humidity"`
	WindSpeed   int                         `json:"windSpeed"`
	Forecast    [ForecastLength]ForecastDay `json:"forecast"`
}

// Origin tells whether a report came from live data or the fallback snapshot.
type Origin string

const (
	OriginLive     Origin = "live"
	OriginFallback Origin = "fallback"
)

// Report is a snapshot plus its advisory as stored and served.
type Report struct {
	ID        string    `json:"id"`
	Origin    Origin    `json:"source"`
	FetchedAt time.Time `json:"fetchedAt"` // always UTC
	Snapshot  Snapshot  `json:"weather"`
	Advisory  Advisory  `json:"advisory"`

	// Set on fallback reports only.
	Error  string `json:"error,omitempty"`
	Notice string `json:"notice,omitempty"`
}
