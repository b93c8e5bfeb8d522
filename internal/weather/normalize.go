package weather

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// leadingIntRe matches an optionally signed integer prefix, e.g. " 85%" -> 85.
	leadingIntRe = regexp.MustCompile(`^\s*([+-]?\d+)`)

	// firstIntRe finds the first run of digits, e.g. "NE 15-25 km/h" -> 15.
	firstIntRe = regexp.MustCompile(`\d+`)
)

// Wind speed assumed when only a direction is reported.
const directionOnlyWindSpeed = 15

// NormalizeHumidity reduces any humidity shape to a percentage in [0,100].
// Ranges prefer their upper bound.
func NormalizeHumidity(h Humidity) int {
	v, _ := humidityReading(h)
	return v
}

// humidityReading is NormalizeHumidity that also reports whether a reading
// was found. ok is false when DefaultHumidity was substituted.
func humidityReading(h Humidity) (v int, ok bool) {
	v = DefaultHumidity

	switch h.Kind {
	case HumidityAbsent:
	case HumidityNumber:
		v, ok = roundHalfUp(h.Value), true
	case HumidityPair:
		switch {
		case h.High != 0:
			v, ok = roundHalfUp(h.High), true
		case h.Low != 0:
			v, ok = roundHalfUp(h.Low), true
		}
	case HumidityText:
		if n, found := humidityFromText(h.Text); found {
			v, ok = n, true
		}
	}

	return clamp(v, 0, 100), ok
}

func humidityFromText(s string) (int, bool) {
	if lo, hi, ok := strings.Cut(s, "-"); ok {
		if n := leadingInt(hi); n != 0 {
			return n, true
		}
		if n := leadingInt(lo); n != 0 {
			return n, true
		}
		return 0, false
	}
	if n := leadingInt(s); n != 0 {
		return n, true
	}
	return 0, false
}

// NormalizeWind reduces any wind shape to a speed in km/h within [0,50].
func NormalizeWind(w Wind) int {
	v, _ := windReading(w)
	return v
}

// windReading is NormalizeWind that also reports whether a speed was found.
// ok is false when DefaultWindSpeed was substituted.
func windReading(w Wind) (v int, ok bool) {
	v = DefaultWindSpeed

	switch w.Kind {
	case WindAbsent:
	case WindStructured:
		switch {
		case w.Speed != "":
			v, ok = firstInt(w.Speed)
		case w.Direction != "":
			v, ok = directionOnlyWindSpeed, true
		}
	case WindText:
		v, ok = firstInt(w.Text)
	}
	if !ok {
		v = DefaultWindSpeed
	}

	return clamp(v, 0, 50), ok
}

// ProcessForecast builds the 4-day outlook. Fewer than ForecastLength
// usable entries yields DefaultForecast.
func ProcessForecast(raw RawFourDayForecast) [ForecastLength]ForecastDay {
	out, _ := processForecast(raw)
	return out
}

func processForecast(raw RawFourDayForecast) ([ForecastLength]ForecastDay, bool) {
	if len(raw.Items) == 0 {
		return DefaultForecast(), false
	}

	valid := make([]RawForecastDay, 0, ForecastLength)
	for _, d := range raw.Items[0].Forecasts {
		if d.malformed {
			continue
		}
		valid = append(valid, d)
		if len(valid) == ForecastLength {
			break
		}
	}
	if len(valid) < ForecastLength {
		return DefaultForecast(), false
	}

	var out [ForecastLength]ForecastDay
	for i, d := range valid {
		condition := d.Forecast
		if condition == "" {
			condition = DefaultCondition
		}
		out[i] = ForecastDay{
			Label:       dayLabel(i, d.Date),
			Temperature: forecastTemperature(d.Temperature),
			Condition:   condition,
			Icon:        IconFor(condition),
		}
	}
	return out, true
}

// dayLabel names entry i: "Today", "Tomorrow", then the short weekday of date.
func dayLabel(i int, date string) string {
	switch i {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, date); err == nil {
			return t.Weekday().String()[:3]
		}
	}
	return fmt.Sprintf("Day %d", i+1)
}

// forecastTemperature is the rounded midpoint of low/high, or whichever bound
// is present.
func forecastTemperature(r TemperatureRange) int {
	switch {
	case r.Low != 0 && r.High != 0:
		return roundHalfUp((r.Low + r.High) / 2)
	case r.High != 0:
		return roundHalfUp(r.High)
	case r.Low != 0:
		return roundHalfUp(r.Low)
	}
	return DefaultTemperature
}

// leadingInt parses an integer prefix, returning 0 when there is none.
// Values beyond the int range saturate.
func leadingInt(s string) int {
	m := leadingIntRe.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	n, _ := atoi(m[1])
	return n
}

// firstInt parses the first run of digits in s.
func firstInt(s string) (int, bool) {
	m := firstIntRe.FindString(s)
	if m == "" {
		return 0, false
	}
	return atoi(m)
}

// atoi is strconv.Atoi that saturates at the int bounds instead of failing.
func atoi(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return n, true
}
