package weather

import (
	"fmt"

	"github.com/shoresquad/shoresquad-weather/internal/common"
)

// Tier ranks cleanup suitability, worst first.
type Tier int

const (
	TierPoor Tier = iota
	TierModerate
	TierGood
	TierExcellent
)

var tierNames = [...]string{"poor", "moderate", "good", "excellent"}

func (t Tier) String() string {
	if t < 0 || int(t) >= len(tierNames) {
		return fmt.Sprintf("Tier(%d)", int(t))
	}
	return tierNames[t]
}

func (t Tier) MarshalText() ([]byte, error) {
	if t < 0 || int(t) >= len(tierNames) {
		return nil, fmt.Errorf("invalid tier %d", int(t))
	}
	return []byte(tierNames[t]), nil
}

func (t *Tier) UnmarshalText(b []byte) error {
	for i, name := range tierNames {
		if name == string(b) {
			*t = Tier(i)
			return nil
		}
	}
	return fmt.Errorf("unknown tier %q", b)
}

// Advisory is the cleanup recommendation derived from a Snapshot.
type Advisory struct {
	Tier    Tier     `json:"suitability"`
	Icon    Icon     `json:"icon"`
	Message string   `json:"message"`
	Tips    []string `json:"tips"`
}

// advisoryRule is one row of the ordered decision list.
type advisoryRule struct {
	tier    Tier
	icon    Icon
	message string
	tips    [4]string
	match   func(condition string, s Snapshot) bool
}

// advisoryRules is evaluated top to bottom; the last rule always matches.
var advisoryRules = []advisoryRule{
	{
		tier:    TierPoor,
		icon:    IconWarning,
		message: "Unsafe conditions - postpone cleanup",
		tips: [4]string{
			"Wait for weather to clear completely",
			"Monitor NEA weather updates",
			"Plan for next available date",
			"Consider indoor environmental activities",
		},
		match: func(c string, _ Snapshot) bool {
			return common.HasAnyFold(c, "thundery", "heavy rain", "storm")
		},
	},
	{
		tier:    TierPoor,
		icon:    IconUmbrella,
		message: "Not recommended for beach cleanup",
		tips: [4]string{
			"Wet sand can be dangerous for walking",
			"Limited visibility affects safety",
			"Check forecast for tomorrow",
			"Consider rescheduling to a clearer day",
		},
		match: func(c string, _ Snapshot) bool {
			return common.HasAnyFold(c, "shower", "light rain", "rain")
		},
	},
	{
		tier:    TierModerate,
		icon:    IconSmog,
		message: "Proceed with caution - Air quality concerns",
		tips: [4]string{
			"Wear N95 masks during cleanup",
			"Take frequent breaks indoors",
			"Stay hydrated more than usual",
			"Consider shorter sessions (1-2 hours max)",
		},
		match: func(c string, _ Snapshot) bool {
			return common.HasAnyFold(c, "haze", "hazy")
		},
	},
	{
		tier:    TierModerate,
		icon:    IconThermometer,
		message: "Hot conditions - take extra precautions",
		tips: [4]string{
			"Start early morning (7-9 AM) or late afternoon (5-7 PM)",
			"Bring extra water and electrolyte drinks",
			"Wear light-colored, long-sleeved shirts",
			"Take shade breaks every 30 minutes",
		},
		match: func(_ string, s Snapshot) bool {
			return s.Temperature > 30
		},
	},
	{
		tier:    TierModerate,
		icon:    IconHumidity,
		message: "High humidity - plan for comfort",
		tips: [4]string{
			"Wear moisture-wicking clothing",
			"Bring cooling towels",
			"Schedule more frequent breaks",
			"Start hydrating well before the event",
		},
		match: func(_ string, s Snapshot) bool {
			return s.Humidity > 85
		},
	},
	{
		tier:    TierExcellent,
		icon:    IconThumbsUp,
		message: "Perfect Singapore weather for cleanup!",
		tips: [4]string{
			"Great conditions for outdoor activity",
			"Bring sunscreen (SPF 30+) - UV can be strong",
			"Perfect for team photos and social media",
			"Ideal weather for longer cleanup sessions",
		},
		match: func(c string, s Snapshot) bool {
			return common.HasAnyFold(c, "fair", "partly cloudy", "cloudy") &&
				s.Temperature >= 24 && s.Temperature <= 30 && s.Humidity <= 85
		},
	},
	{
		tier:    TierGood,
		icon:    IconCheck,
		message: "Good conditions for beach cleanup",
		tips: [4]string{
			"Weather is suitable for outdoor work",
			"Bring standard sun protection",
			"Stay hydrated throughout the event",
			"Monitor weather for any changes",
		},
		match: func(string, Snapshot) bool { return true },
	},
}

// DeriveAdvisory applies the first matching rule. It is pure: the returned
// tips slice is a fresh copy on every call.
func DeriveAdvisory(s Snapshot) Advisory {
	for _, r := range advisoryRules {
		if r.match(s.Condition, s) {
			return Advisory{
				Tier:    r.tier,
				Icon:    r.icon,
				Message: r.message,
				Tips:    append([]string(nil), r.tips[:]...),
			}
		}
	}
	panic("weather: no advisory rule matched")
}
