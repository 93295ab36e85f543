package weather

import "encoding/json"

// Snapshot is the canonical normalized weather document returned to
// clients, regardless of which upstream produced the data.
type Snapshot struct {
	Location Location          `json:"location"`
	Current  Current           `json:"current"`
	Days     []Day             `json:"days"`
	Alerts   []json.RawMessage `json:"alerts"`
}

// Location describes the place the snapshot was resolved to.
type Location struct {
	Name             string  `json:"name"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	Timezone         string  `json:"timezone"`
	UTCOffsetMinutes int     `json:"utcOffsetMinutes"`
}

// Conditions holds the instantaneous meteorological fields shared by the
// current block and hourly entries. Every field is a pointer: a value the
// upstream did not supply stays nil and marshals as null, it is never
// substituted with a fabricated default.
type Conditions struct {
	Datetime       *string  `json:"datetime"`
	Temp           *float64 `json:"temp"`
	FeelsLike      *float64 `json:"feelslike"`
	Humidity       *float64 `json:"humidity"`
	Dew            *float64 `json:"dew"`
	Precip         *float64 `json:"precip"`
	PrecipProb     *float64 `json:"precipprob"`
	Snow           *float64 `json:"snow"`
	SnowDepth      *float64 `json:"snowdepth"`
	PrecipType     []string `json:"preciptype"`
	WindGust       *float64 `json:"windgust"`
	WindSpeed      *float64 `json:"windspeed"`
	WindDir        *float64 `json:"winddir"`
	Pressure       *float64 `json:"pressure"`
	Visibility     *float64 `json:"visibility"`
	CloudCover     *float64 `json:"cloudcover"`
	SolarRadiation *float64 `json:"solarradiation"`
	SolarEnergy    *float64 `json:"solarenergy"`
	UVIndex        *float64 `json:"uvindex"`
	Conditions     *string  `json:"conditions"`
	Icon           *string  `json:"icon"`
}

// Current is the current-conditions block of a Snapshot. Unlike the raw
// upstream block it always carries an air-quality value.
type Current struct {
	Conditions
	Sunrise   *string    `json:"sunrise"`
	Sunset    *string    `json:"sunset"`
	MoonPhase *float64   `json:"moonphase"`
	AQI       AirQuality `json:"aqi"`
}

// Day is one daily aggregate in the snapshot timeline.
type Day struct {
	Conditions
	DatetimeEpoch *int64   `json:"datetimeEpoch"`
	TempMax       *float64 `json:"tempmax"`
	TempMin       *float64 `json:"tempmin"`
	FeelsLikeMax  *float64 `json:"feelslikemax"`
	FeelsLikeMin  *float64 `json:"feelslikemin"`
	PrecipCover   *float64 `json:"precipcover"`
	Sunrise       *string  `json:"sunrise"`
	Sunset        *string  `json:"sunset"`
	MoonPhase     *float64 `json:"moonphase"`
	Description   *string  `json:"description"`
	Hours         []Hour   `json:"hours,omitempty"`
}

// Hour is one hourly entry nested under a Day.
type Hour struct {
	Conditions
	DatetimeEpoch *int64 `json:"datetimeEpoch"`
}

// AirQuality is the 1-5 air-quality band (1 best) with pollutant
// readings when a dedicated endpoint supplied them.
type AirQuality struct {
	Category   int         `json:"aqi"`
	PM25       *float64    `json:"pm25,omitempty"`
	Components *Pollutants `json:"components,omitempty"`
}

// Pollutants carries component concentrations verbatim from the
// air-quality endpoint.
type Pollutants struct {
	PM25 *float64 `json:"pm2_5"`
	PM10 *float64 `json:"pm10"`
	O3   *float64 `json:"o3"`
	NO2  *float64 `json:"no2"`
	SO2  *float64 `json:"so2"`
}

// TimelineResponse is the upstream weather timeline payload as decoded
// from the provider. Meteorological fields reuse the canonical structs
// because normalization copies them verbatim.
type TimelineResponse struct {
	ResolvedAddress   string            `json:"resolvedAddress"`
	Latitude          float64           `json:"latitude"`
	Longitude         float64           `json:"longitude"`
	Timezone          string            `json:"timezone"`
	TZOffset          float64           `json:"tzoffset"`
	CurrentConditions CurrentConditions `json:"currentConditions"`
	Days              []Day             `json:"days"`
	Alerts            []json.RawMessage `json:"alerts"`
}

// CurrentConditions is the upstream current block, before AQI enrichment.
type CurrentConditions struct {
	Conditions
	Sunrise   *string  `json:"sunrise"`
	Sunset    *string  `json:"sunset"`
	MoonPhase *float64 `json:"moonphase"`
}

// AirReading is what the air-quality endpoint produced for a location.
// A nil PM25 means the endpoint answered but had no usable pm2.5 value.
type AirReading struct {
	PM25       *float64
	Components Pollutants
}

// Suggestion is one live geocoding autocomplete result.
type Suggestion struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	MainText      string  `json:"main_text"`
	SecondaryText string  `json:"secondary_text"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	Country       string  `json:"country"`
	Region        string  `json:"region"`
}
