package reference

import "strings"

// Coordinate is a country centroid used for volume-scaled map plotting.
type Coordinate struct {
	Lat float64
	Lon float64
}

// coords maps ISO 3166-1 alpha-2 codes to display centroids. Codes absent
// here still count toward the country table; they are only dropped from the
// map-ready subset.
var coords = map[string]Coordinate{
	"US": {37.09, -95.71}, "GB": {55.37, -3.43}, "CA": {56.13, -106.34},
	"FR": {46.22, 2.21}, "DE": {51.16, 10.45}, "IT": {41.87, 12.56},
	"ES": {40.46, -3.74}, "JP": {36.20, 138.25}, "CN": {35.86, 104.19},
	"IN": {20.59, 78.96}, "BR": {-14.23, -51.92}, "AU": {-25.27, 133.77},
	"RU": {61.52, 105.31}, "ZA": {-30.55, 22.93}, "MX": {23.63, -102.55},
	"KR": {35.90, 127.76}, "NL": {52.13, 5.29}, "SE": {60.12, 18.64},
	"CH": {46.81, 8.22}, "TR": {38.96, 35.24}, "BE": {50.50, 4.46},
	"AR": {-38.41, -63.61}, "PL": {51.91, 19.14}, "TH": {15.87, 100.99},
	"PT": {39.39, -8.22}, "AT": {47.51, 14.55}, "DK": {56.26, 9.50},
	"NO": {60.47, 8.46}, "FI": {61.92, 25.74}, "NZ": {-40.90, 174.88},
	"IL": {31.04, 34.85}, "SG": {1.35, 103.81}, "IE": {53.41, -8.24},
	"GR": {39.07, 21.82}, "HU": {47.16, 19.50}, "CZ": {49.81, 15.47},
	"RO": {45.94, 24.96}, "SA": {23.88, 45.07}, "MY": {4.21, 101.97},
	"PH": {12.87, 121.77}, "NG": {9.08, 8.67}, "EG": {26.82, 30.80},
	"UA": {48.37, 31.16},
}

// names maps ISO2 codes to display names for the countries most commonly
// seen in FAERS submissions. Unlisted codes display as the code itself.
var names = map[string]string{
	"US": "United States", "GB": "United Kingdom", "CA": "Canada",
	"FR": "France", "DE": "Germany", "JP": "Japan", "AU": "Australia",
	"IT": "Italy", "ES": "Spain", "NL": "Netherlands", "SE": "Sweden",
	"CH": "Switzerland", "BE": "Belgium", "CN": "China", "IN": "India",
	"BR": "Brazil", "RU": "Russia", "MX": "Mexico", "KR": "South Korea",
	"TR": "Turkey", "AR": "Argentina", "PL": "Poland", "SG": "Singapore",
	"IE": "Ireland", "GR": "Greece", "HU": "Hungary",
}

// LookupCoordinate returns the display centroid for an ISO2 code.
func LookupCoordinate(code string) (Coordinate, bool) {
	c, ok := coords[strings.ToUpper(strings.TrimSpace(code))]
	return c, ok
}

// CountryName returns the display name for an ISO2 code, falling back to the
// code itself when no name is known.
func CountryName(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if n, ok := names[code]; ok {
		return n
	}
	return code
}
