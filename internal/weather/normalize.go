package weather

import "encoding/json"

// Normalize reshapes an upstream timeline payload into the canonical
// Snapshot. Meteorological fields pass through verbatim; the only value
// ever synthesized is the air-quality category, which is classified from
// the air reading when one is available and otherwise derived from the
// current conditions so that current.aqi is always populated.
func Normalize(tl *TimelineResponse, air *AirReading) Snapshot {
	snap := Snapshot{
		Location: Location{
			Name:             tl.ResolvedAddress,
			Latitude:         tl.Latitude,
			Longitude:        tl.Longitude,
			Timezone:         tl.Timezone,
			UTCOffsetMinutes: int(tl.TZOffset * 60),
		},
		Current: Current{
			Conditions: tl.CurrentConditions.Conditions,
			Sunrise:    tl.CurrentConditions.Sunrise,
			Sunset:     tl.CurrentConditions.Sunset,
			MoonPhase:  tl.CurrentConditions.MoonPhase,
			AQI:        deriveAirQuality(air, tl.CurrentConditions),
		},
		Days:   tl.Days,
		Alerts: tl.Alerts,
	}

	if snap.Days == nil {
		snap.Days = []Day{}
	}
	if snap.Alerts == nil {
		snap.Alerts = []json.RawMessage{}
	}
	return snap
}

// deriveAirQuality implements the two-tier AQI policy: classify a live
// pm2.5 reading when one exists, otherwise fall back to the heuristic.
// The heuristic arm cannot fail, so the result always has a category.
func deriveAirQuality(air *AirReading, cur CurrentConditions) AirQuality {
	if air != nil && air.PM25 != nil {
		components := air.Components
		return AirQuality{
			Category:   classifyPM25(*air.PM25),
			PM25:       air.PM25,
			Components: &components,
		}
	}
	return AirQuality{Category: heuristicCategory(cur.Conditions)}
}

// classifyPM25 maps a pm2.5 concentration onto the 1-5 band.
func classifyPM25(pm25 float64) int {
	switch {
	case pm25 > 250:
		return 5
	case pm25 > 150:
		return 4
	case pm25 > 55:
		return 3
	case pm25 > 35:
		return 2
	default:
		return 1
	}
}

// heuristicCategory estimates the air-quality band from visibility,
// cloud cover, and humidity when no pollutant data is available. Missing
// inputs assume a clear mid-range day (visibility 10, cloud cover 0,
// humidity 50).
func heuristicCategory(c Conditions) int {
	visibility := valueOr(c.Visibility, 10)
	cloudCover := valueOr(c.CloudCover, 0)
	humidity := valueOr(c.Humidity, 50)

	switch {
	case visibility >= 8 && cloudCover <= 30 && humidity <= 60:
		return 1
	case visibility >= 5 && cloudCover <= 60 && humidity <= 75:
		return 2
	case visibility >= 2 && cloudCover <= 80 && humidity <= 85:
		return 3
	case visibility >= 1 && cloudCover <= 95:
		return 4
	default:
		return 5
	}
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
