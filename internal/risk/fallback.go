package risk

import "strings"

// averageInput is the fixed substitute reading scored when a simplified
// (region-only) request cannot reach the remote service: typical mid-range
// conditions with no environmental penalties.
func averageInput(region string) PredictionInput {
	return PredictionInput{
		Region:      region,
		LatencyMS:   150,
		PacketLoss:  2,
		Temperature: 24,
		WindSpeed:   8,
		Humidity:    60,
	}
}

// cityFallbacks are the static per-country datasets served when the remote
// city endpoint is unreachable. Values are on the small-fraction scale the
// default classifier thresholds are tuned for.
var cityFallbacks = map[string]CityProbabilities{
	"spain": {
		"Madrid":    0.0035,
		"Barcelona": 0.0041,
		"Seville":   0.0068,
		"Valencia":  0.0052,
		"Bilbao":    0.0029,
	},
	"usa": {
		"New York":    0.0066,
		"Los Angeles": 0.0048,
		"Chicago":     0.0057,
		"Houston":     0.0072,
		"Miami":       0.0063,
	},
	"uk": {
		"London":     0.0044,
		"Manchester": 0.0051,
		"Birmingham": 0.0038,
		"Glasgow":    0.0062,
		"Leeds":      0.0047,
	},
}

// FallbackCities returns a copy of the static dataset for country, if one
// exists. Matching is case-insensitive.
func FallbackCities(country string) (CityProbabilities, bool) {
	src, ok := cityFallbacks[strings.ToLower(strings.TrimSpace(country))]
	if !ok {
		return nil, false
	}
	out := make(CityProbabilities, len(src))
	for city, p := range src {
		out[city] = p
	}
	return out, true
}
