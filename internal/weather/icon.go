package weather

import (
	"strings"

	"github.com/shoresquad/shoresquad-weather/internal/common"
)

// IconFor maps a free-text condition to an icon category. Checks run in a
// fixed order and the first match wins, so "Thundery Showers" is a rain icon.
func IconFor(condition string) Icon {
	c := strings.ToLower(condition)

	switch {
	case common.HasAny(c, "rain", "shower"):
		return IconRain
	case common.HasAny(c, "thunder", "storm"):
		return IconStorm
	case strings.Contains(c, "cloud"):
		if strings.Contains(c, "partly") {
			return IconPartlyCloudy
		}
		return IconCloudy
	case common.HasAny(c, "sun", "fair", "clear"):
		return IconSun
	case common.HasAny(c, "haze", "mist"):
		return IconSmog
	default:
		return IconPartlyCloudy
	}
}
