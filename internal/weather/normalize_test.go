package weather

import "testing"

func fptr(v float64) *float64 { return &v }

func TestClassifyPM25Bands(t *testing.T) {
	cases := []struct {
		pm25 float64
		want int
	}{
		{10, 1},
		{35, 1},
		{36, 2},
		{55, 2},
		{56, 3},
		{150, 3},
		{200, 4},
		{250, 4},
		{251, 5},
	}

	for _, tc := range cases {
		if got := classifyPM25(tc.pm25); got != tc.want {
			t.Errorf("classifyPM25(%v) = %d, want %d", tc.pm25, got, tc.want)
		}
	}
}

func TestNormalizeUsesAirReading(t *testing.T) {
	tl := &TimelineResponse{
		ResolvedAddress: "Paris, France",
		Latitude:        48.8566,
		Longitude:       2.3522,
	}
	air := &AirReading{
		PM25:       fptr(200),
		Components: Pollutants{PM25: fptr(200), PM10: fptr(220)},
	}

	snap := Normalize(tl, air)

	if snap.Current.AQI.Category != 4 {
		t.Fatalf("expected category 4 for pm2.5=200, got %d", snap.Current.AQI.Category)
	}
	if snap.Current.AQI.PM25 == nil || *snap.Current.AQI.PM25 != 200 {
		t.Fatal("expected pm2.5 reading carried through")
	}
	if snap.Current.AQI.Components == nil || snap.Current.AQI.Components.PM10 == nil {
		t.Fatal("expected pollutant components carried through")
	}
}

func TestNormalizeFallsBackToHeuristic(t *testing.T) {
	tl := &TimelineResponse{
		CurrentConditions: CurrentConditions{
			Conditions: Conditions{
				Visibility: fptr(3),
				CloudCover: fptr(70),
				Humidity:   fptr(80),
			},
		},
	}

	// nil reading: the air-quality endpoint failed entirely.
	snap := Normalize(tl, nil)
	if snap.Current.AQI.Category != 3 {
		t.Fatalf("expected heuristic category 3, got %d", snap.Current.AQI.Category)
	}
	if snap.Current.AQI.PM25 != nil || snap.Current.AQI.Components != nil {
		t.Fatal("heuristic result must not fabricate pollutant values")
	}

	// A reading without pm2.5 also falls back.
	snap = Normalize(tl, &AirReading{})
	if snap.Current.AQI.Category != 3 {
		t.Fatalf("expected heuristic category 3, got %d", snap.Current.AQI.Category)
	}
}

func TestHeuristicCategoryBands(t *testing.T) {
	cases := []struct {
		name                 string
		vis, cloud, humidity *float64
		want                 int
	}{
		{"clear day", fptr(10), fptr(10), fptr(40), 1},
		{"mild haze", fptr(6), fptr(50), fptr(70), 2},
		{"overcast", fptr(3), fptr(70), fptr(80), 3},
		{"poor visibility", fptr(1), fptr(90), fptr(90), 4},
		{"worst", fptr(0.5), fptr(100), fptr(95), 5},
		{"missing inputs assume clear", nil, nil, nil, 1},
	}

	for _, tc := range cases {
		c := Conditions{Visibility: tc.vis, CloudCover: tc.cloud, Humidity: tc.humidity}
		if got := heuristicCategory(c); got != tc.want {
			t.Errorf("%s: heuristicCategory = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestNormalizePassesFieldsVerbatim(t *testing.T) {
	temp := fptr(21.5)
	tl := &TimelineResponse{
		ResolvedAddress: "Oslo, Norway",
		Latitude:        59.91,
		Longitude:       10.75,
		Timezone:        "Europe/Oslo",
		TZOffset:        5.5,
		CurrentConditions: CurrentConditions{
			Conditions: Conditions{Temp: temp},
		},
		Days: []Day{
			{TempMax: fptr(25), Hours: []Hour{{Conditions: Conditions{Temp: fptr(19)}}}},
		},
	}

	snap := Normalize(tl, nil)

	if snap.Location.Name != "Oslo, Norway" || snap.Location.Timezone != "Europe/Oslo" {
		t.Fatalf("location block not mapped: %+v", snap.Location)
	}
	if snap.Location.UTCOffsetMinutes != 330 {
		t.Fatalf("expected utc offset 330 minutes, got %d", snap.Location.UTCOffsetMinutes)
	}
	if snap.Current.Temp != temp {
		t.Fatal("current temp not passed through verbatim")
	}
	// Absent values stay absent.
	if snap.Current.WindSpeed != nil {
		t.Fatal("missing wind speed must remain nil")
	}
	if len(snap.Days) != 1 || *snap.Days[0].TempMax != 25 {
		t.Fatal("days not passed through")
	}
	if len(snap.Days[0].Hours) != 1 || *snap.Days[0].Hours[0].Temp != 19 {
		t.Fatal("hours not passed through")
	}
	if snap.Alerts == nil || len(snap.Alerts) != 0 {
		t.Fatal("missing alerts must normalize to an empty list")
	}
}
