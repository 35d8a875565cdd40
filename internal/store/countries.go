package store

import "strings"

// Country is the closed set of destinations the app supports. The canonical
// representation is the lowercase English slug; the Korean labels the mobile
// client historically sent are accepted on input and available for display.
type Country string

const (
	CountryJapan       Country = "japan"
	CountryUSA         Country = "usa"
	CountryVietnam     Country = "vietnam"
	CountryPhilippines Country = "philippines"
	CountryThailand    Country = "thailand"
)

// Countries returns the supported destinations in menu order.
func Countries() []Country {
	return []Country{
		CountryJapan,
		CountryUSA,
		CountryVietnam,
		CountryPhilippines,
		CountryThailand,
	}
}

var countryLabels = map[Country]string{
	CountryJapan:       "일본",
	CountryUSA:         "미국",
	CountryVietnam:     "베트남",
	CountryPhilippines: "필리핀",
	CountryThailand:    "태국",
}

var countryAliases = map[string]Country{
	"japan":       CountryJapan,
	"일본":          CountryJapan,
	"usa":         CountryUSA,
	"미국":          CountryUSA,
	"vietnam":     CountryVietnam,
	"베트남":         CountryVietnam,
	"philippines": CountryPhilippines,
	"필리핀":         CountryPhilippines,
	"thailand":    CountryThailand,
	"태국":          CountryThailand,
}

// ParseCountry maps a client-supplied destination string to its canonical
// value. The second return is false for anything outside the closed set.
func ParseCountry(s string) (Country, bool) {
	c, ok := countryAliases[strings.ToLower(strings.TrimSpace(s))]
	return c, ok
}

// Label returns the Korean display name shown in the app.
func (c Country) Label() string {
	return countryLabels[c]
}

// Valid reports whether c is one of the supported destinations.
func (c Country) Valid() bool {
	_, ok := countryLabels[c]
	return ok
}
