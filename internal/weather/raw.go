package weather

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
)

// RawTemperature is the air-temperature payload: one reading per station.
type RawTemperature struct {
	Items []TemperatureItem `json:"items"`
}

type TemperatureItem struct {
	Timestamp string           `json:"timestamp"`
	Readings  []StationReading `json:"readings"`
}

type StationReading struct {
	StationID string  `json:"station_id"`
	Value     float64 `json:"value"`
}

// RawFourDayForecast is the 4-day outlook payload.
type RawFourDayForecast struct {
	Items []FourDayItem `json:"items"`
}

type FourDayItem struct {
	Forecasts []RawForecastDay `json:"forecasts"`
}

// RawForecastDay is a single day of the 4-day outlook. Zero bounds in
// Temperature count as missing.
type RawForecastDay struct {
	Date        string           `json:"date"`
	Forecast    string           `json:"forecast"`
	Temperature TemperatureRange `json:"temperature"`

	malformed bool
}

type TemperatureRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// UnmarshalJSON accepts any JSON value. Entries that are not objects are
// marked malformed and skipped during normalization; fields of the wrong
// type are left at their zero value.
func (d *RawForecastDay) UnmarshalJSON(data []byte) error {
	if !isObject(data) {
		*d = RawForecastDay{malformed: true}
		return nil
	}
	type plain RawForecastDay
	var p plain
	if err := tolerateTypeErrors(json.Unmarshal(data, &p)); err != nil {
		return err
	}
	*d = RawForecastDay(p)
	return nil
}

// RawTodayForecast is the 24-hour forecast payload.
type RawTodayForecast struct {
	Items []TodayItem `json:"items"`
}

type TodayItem struct {
	General GeneralForecast `json:"general"`
}

type GeneralForecast struct {
	Forecast         string   `json:"forecast"`
	RelativeHumidity Humidity `json:"relative_humidity"`
	Wind             Wind     `json:"wind"`
}

// HumidityKind tags which shape a Humidity value arrived in.
type HumidityKind int

const (
	HumidityAbsent HumidityKind = iota
	HumidityNumber
	HumidityText
	HumidityPair
)

// Humidity is the relative humidity field of the 24-hour forecast, which
// arrives as a number, a "low-high" string, or a {low, high} object.
type Humidity struct {
	Kind  HumidityKind
	Value float64 // HumidityNumber
	Text  string  // HumidityText
	Low   float64 // HumidityPair
	High  float64 // HumidityPair
}

// LogValue renders the humidity in the shape it arrived in.
func (h Humidity) LogValue() slog.Value {
	switch h.Kind {
	case HumidityNumber:
		return slog.Float64Value(h.Value)
	case HumidityText:
		return slog.StringValue(h.Text)
	case HumidityPair:
		return slog.GroupValue(slog.Float64("low", h.Low), slog.Float64("high", h.High))
	}
	return slog.StringValue("absent")
}

func HumidityFromNumber(v float64) Humidity {
	return Humidity{Kind: HumidityNumber, Value: v}
}

func HumidityFromText(s string) Humidity {
	return Humidity{Kind: HumidityText, Text: s}
}

func HumidityFromPair(low, high float64) Humidity {
	return Humidity{Kind: HumidityPair, Low: low, High: high}
}

// UnmarshalJSON never fails; unsupported shapes decode as HumidityAbsent.
func (h *Humidity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*h = Humidity{}
	if len(data) == 0 {
		return nil
	}

	switch {
	case data[0] == '"':
		var s string
		if json.Unmarshal(data, &s) == nil {
			*h = HumidityFromText(s)
		}
	case data[0] == '{':
		var pair TemperatureRange
		_ = tolerateTypeErrors(json.Unmarshal(data, &pair))
		*h = HumidityFromPair(pair.Low, pair.High)
	case data[0] == '-' || (data[0] >= '0' && data[0] <= '9'):
		if v, err := strconv.ParseFloat(string(data), 64); err == nil {
			*h = HumidityFromNumber(v)
		}
	}
	return nil
}

// WindKind tags which shape a Wind value arrived in.
type WindKind int

const (
	WindAbsent WindKind = iota
	WindText
	WindStructured
)

// Wind is the wind field of the 24-hour forecast: either free text such as
// "NE 15-25 km/h" or an object with speed and/or direction. Speed is kept
// as text ("" when missing); numeric and {low, high} speeds are rendered
// to text on decode.
type Wind struct {
	Kind      WindKind
	Text      string // WindText
	Speed     string // WindStructured
	Direction string // WindStructured
}

// LogValue renders the wind in the shape it arrived in.
func (w Wind) LogValue() slog.Value {
	switch w.Kind {
	case WindText:
		return slog.StringValue(w.Text)
	case WindStructured:
		return slog.GroupValue(slog.String("speed", w.Speed), slog.String("direction", w.Direction))
	}
	return slog.StringValue("absent")
}

func WindFromText(s string) Wind {
	return Wind{Kind: WindText, Text: s}
}

func WindFromParts(speed, direction string) Wind {
	return Wind{Kind: WindStructured, Speed: speed, Direction: direction}
}

// UnmarshalJSON never fails; unsupported shapes decode as WindAbsent.
func (w *Wind) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*w = Wind{}
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if json.Unmarshal(data, &s) == nil {
			*w = WindFromText(s)
		}
	case '{':
		var fields map[string]json.RawMessage
		if json.Unmarshal(data, &fields) != nil {
			return nil
		}
		*w = WindFromParts(speedText(fields["speed"]), scalarText(fields["direction"]))
	}
	return nil
}

// speedText renders a speed of any supported shape as text. Zero and empty
// speeds render as "".
func speedText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	if raw[0] == '{' {
		var r TemperatureRange
		_ = tolerateTypeErrors(json.Unmarshal(raw, &r))
		switch {
		case r.Low != 0 && r.High != 0:
			return formatSpeed(r.Low) + "-" + formatSpeed(r.High)
		case r.Low != 0:
			return formatSpeed(r.Low)
		case r.High != 0:
			return formatSpeed(r.High)
		}
		return ""
	}
	if v, err := strconv.ParseFloat(string(raw), 64); err == nil {
		if v == 0 {
			return ""
		}
		return formatSpeed(v)
	}
	return scalarText(raw)
}

// formatSpeed renders v in plain decimal notation so that digit scanning
// sees its integer part, never an exponent.
func formatSpeed(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// scalarText returns a JSON string's value or any other non-null literal
// verbatim.
func scalarText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if json.Unmarshal(raw, &s) == nil {
			return s
		}
		return ""
	}
	if raw[0] == '{' || raw[0] == '[' {
		return ""
	}
	return string(raw)
}

func isObject(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) > 0 && data[0] == '{'
}

// tolerateTypeErrors drops *json.UnmarshalTypeError: the decoder has
// already filled every field it could.
func tolerateTypeErrors(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return nil
	}
	return err
}
