// Package baggage holds the airline checked-baggage rules and the
// overweight fee arithmetic. Everything here is pure; the rule table is
// fixed reference data.
package baggage

import (
	"fmt"
	"math"
	"strings"
)

// Airline identifies a supported carrier. The canonical form is the English
// name; the Korean labels stored by older clients are accepted on input.
type Airline string

const (
	KoreanAir Airline = "Korean Air"
	Asiana    Airline = "Asiana Airlines"
	TwayAir   Airline = "T'way Air"
	JejuAir   Airline = "Jeju Air"
	JinAir    Airline = "Jin Air"
)

// Allowance is one row of the rule table: free checked weight and the
// per-kg charge above it, in KRW.
type Allowance struct {
	Airline     Airline `json:"airline"`
	FreeKg      float64 `json:"free_kg"`
	FeePerKgKRW int     `json:"fee_per_kg_krw"`
}

var table = map[Airline]Allowance{
	KoreanAir: {Airline: KoreanAir, FreeKg: 23, FeePerKgKRW: 10000},
	Asiana:    {Airline: Asiana, FreeKg: 23, FeePerKgKRW: 10000},
	TwayAir:   {Airline: TwayAir, FreeKg: 20, FeePerKgKRW: 10000},
	JejuAir:   {Airline: JejuAir, FreeKg: 15, FeePerKgKRW: 2000},
	JinAir:    {Airline: JinAir, FreeKg: 20, FeePerKgKRW: 2000},
}

var airlineAliases = map[string]Airline{
	"korean air":      KoreanAir,
	"대한항공":            KoreanAir,
	"asiana airlines": Asiana,
	"아시아나항공":          Asiana,
	"t'way air":       TwayAir,
	"티웨이항공":           TwayAir,
	"jeju air":        JejuAir,
	"제주항공":            JejuAir,
	"jin air":         JinAir,
	"진에어항공":           JinAir,
}

var rules = map[Airline]string{
	KoreanAir: "Checked baggage free up to 23kg (1 piece). Cabin baggage up to 12kg.",
	Asiana:    "Checked baggage free up to 23kg (1 piece). Cabin baggage up to 10kg.",
	TwayAir:   "Checked baggage free up to 15-20kg depending on route. Cabin baggage up to 10kg.",
	JejuAir:   "Checked baggage free up to 15kg. Cabin baggage up to 10kg.",
	JinAir:    "Checked baggage free up to 15-20kg (domestic and international differ). Cabin baggage up to 10kg.",
}

// ErrInvalidWeight rejects weights that are negative or not a number. Zero
// is a valid input and yields a zero fee.
type ErrInvalidWeight struct {
	Weight float64
}

func (e *ErrInvalidWeight) Error() string {
	return fmt.Sprintf("invalid baggage weight %v: must be a non-negative number", e.Weight)
}

// ParseAirline maps a client-supplied carrier string to its canonical
// value. Unrecognized carriers still get an Airline back (the zero-fee
// default row applies), with ok=false so callers can tell.
func ParseAirline(s string) (Airline, bool) {
	a, ok := airlineAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return Airline(strings.TrimSpace(s)), false
	}
	return a, true
}

// Lookup returns the rule-table row for the airline. Unknown airlines get
// the zero row, never an error.
func Lookup(airline Airline) Allowance {
	if a, ok := table[airline]; ok {
		return a
	}
	return Allowance{Airline: airline}
}

// Allowances returns the full rule table in a fixed order.
func Allowances() []Allowance {
	return []Allowance{
		table[KoreanAir],
		table[Asiana],
		table[TwayAir],
		table[JejuAir],
		table[JinAir],
	}
}

// Rules returns the human-readable baggage policy for the airline.
func Rules(airline Airline) string {
	if r, ok := rules[airline]; ok {
		return r
	}
	return "No baggage policy on record for this airline."
}

// FeeFromTotalWeight computes the overweight charge from the total checked
// weight; weight at or under the allowance is free.
func FeeFromTotalWeight(airline Airline, totalKg float64) (int, error) {
	if err := checkWeight(totalKg); err != nil {
		return 0, err
	}
	a := Lookup(airline)
	over := math.Max(0, totalKg-a.FreeKg)
	return int(math.Round(over * float64(a.FeePerKgKRW))), nil
}

// FeeFromExcessWeight computes the charge when the caller has already
// subtracted the allowance.
func FeeFromExcessWeight(airline Airline, excessKg float64) (int, error) {
	if err := checkWeight(excessKg); err != nil {
		return 0, err
	}
	a := Lookup(airline)
	return int(math.Round(excessKg * float64(a.FeePerKgKRW))), nil
}

func checkWeight(kg float64) error {
	if math.IsNaN(kg) || math.IsInf(kg, 0) || kg < 0 {
		return &ErrInvalidWeight{Weight: kg}
	}
	return nil
}
