package weather

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIconFor(t *testing.T) {
	tests := []struct {
		condition string
		want      Icon
	}{
		{"Light Rain", IconRain},
		{"Passing Showers", IconRain},
		// rain/shower is checked before thunder.
		{"Thundery Showers", IconRain},
		{"Thunderstorm", IconStorm},
		{"STORMY", IconStorm},
		{"Partly Cloudy (Day)", IconPartlyCloudy},
		{"Cloudy", IconCloudy},
		{"Sunny", IconSun},
		{"Fair (Day)", IconSun},
		{"Clear skies", IconSun},
		{"Haze", IconSmog},
		{"Mist", IconSmog},
		{"Windy", IconPartlyCloudy},
		{"", IconPartlyCloudy},
	}
	for _, tt := range tests {
		t.Run(tt.condition, func(t *testing.T) {
			assert.Equal(t, tt.want, IconFor(tt.condition))
		})
	}
}

func snapshot(condition string, temperature, humidity int) Snapshot {
	return Snapshot{
		Location:    DefaultLocation,
		Temperature: temperature,
		Condition:   condition,
		Humidity:    humidity,
		WindSpeed:   DefaultWindSpeed,
		Forecast:    DefaultForecast(),
	}
}

func TestDeriveAdvisory_Rules(t *testing.T) {
	tests := []struct {
		name    string
		in      Snapshot
		tier    Tier
		icon    Icon
		message string
	}{
		{"thundery beats excellent", snapshot("thundery showers", 25, 70), TierPoor, IconWarning, "Unsafe conditions - postpone cleanup"},
		{"heavy rain", snapshot("Heavy Rain", 27, 80), TierPoor, IconWarning, "Unsafe conditions - postpone cleanup"},
		{"showers", snapshot("Passing Showers", 27, 80), TierPoor, IconUmbrella, "Not recommended for beach cleanup"},
		{"light rain", snapshot("Light Rain", 27, 80), TierPoor, IconUmbrella, "Not recommended for beach cleanup"},
		{"haze", snapshot("Hazy", 26, 70), TierModerate, IconSmog, "Proceed with caution - Air quality concerns"},
		{"hot beats excellent", snapshot("Fair", 32, 70), TierModerate, IconThermometer, "Hot conditions - take extra precautions"},
		{"humid", snapshot("Partly Cloudy", 28, 90), TierModerate, IconHumidity, "High humidity - plan for comfort"},
		{"excellent", snapshot("Partly Cloudy", 26, 75), TierExcellent, IconThumbsUp, "Perfect Singapore weather for cleanup!"},
		{"excellent lower edge", snapshot("Fair", 24, 85), TierExcellent, IconThumbsUp, "Perfect Singapore weather for cleanup!"},
		{"excellent upper edge", snapshot("Cloudy", 30, 85), TierExcellent, IconThumbsUp, "Perfect Singapore weather for cleanup!"},
		{"cool fair", snapshot("Fair", 23, 70), TierGood, IconCheck, "Good conditions for beach cleanup"},
		{"sunny", snapshot("Sunny", 28, 70), TierGood, IconCheck, "Good conditions for beach cleanup"},
		{"fallback", FallbackSnapshot(), TierGood, IconCheck, "Good conditions for beach cleanup"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveAdvisory(tt.in)
			assert.Equal(t, tt.tier, got.Tier)
			assert.Equal(t, tt.icon, got.Icon)
			assert.Equal(t, tt.message, got.Message)
			assert.Len(t, got.Tips, 4)
		})
	}
}

func TestDeriveAdvisory_Pure(t *testing.T) {
	s := snapshot("Partly Cloudy", 26, 75)

	first := DeriveAdvisory(s)
	first.Tips[0] = "mutated"
	second := DeriveAdvisory(s)
	third := DeriveAdvisory(s)

	assert.Equal(t, second, third)
	assert.Equal(t, "Great conditions for outdoor activity", second.Tips[0])
}

func TestDeriveAdvisory_TipSetsAreDistinct(t *testing.T) {
	seen := map[string]string{}
	for _, r := range advisoryRules {
		assert.NotContains(t, seen, r.tips[0], "rule %q reuses tips of %q", r.message, seen[r.tips[0]])
		seen[r.tips[0]] = r.message
	}
}

func TestTier_Ordering(t *testing.T) {
	assert.Less(t, TierPoor, TierModerate)
	assert.Less(t, TierModerate, TierGood)
	assert.Less(t, TierGood, TierExcellent)
}

func TestAdvisory_JSON(t *testing.T) {
	b, err := json.Marshal(DeriveAdvisory(snapshot("Partly Cloudy", 26, 75)))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"suitability":"excellent"`)
	assert.Contains(t, string(b), `"icon":"thumbs-up"`)

	var a Advisory
	require.NoError(t, json.Unmarshal(b, &a))
	assert.Equal(t, TierExcellent, a.Tier)

	assert.Error(t, json.Unmarshal([]byte(`{"suitability":"superb"}`), &a))
	assert.Equal(t, "Tier(9)", Tier(9).String())
}
