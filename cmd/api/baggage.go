package main

import (
	"errors"
	"fmt"
	"net/http"

	"easypack/internal/baggage"
)

func (app *application) listAllowancesHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.jsonResponse(w, http.StatusOK, baggage.Allowances()); err != nil {
		app.internalServerError(w, r, err)
	}
}

// calculateFeePayload carries either the total checked weight or the
// excess above the allowance, never both.
type calculateFeePayload struct {
	Airline      string   `json:"airline" validate:"required"`
	TotalWeight  *float64 `json:"total_weight"`
	ExcessWeight *float64 `json:"excess_weight"`
}

type feeResponse struct {
	Airline     baggage.Airline `json:"airline"`
	AllowanceKg float64         `json:"allowance_kg"`
	FeePerKgKRW int             `json:"fee_per_kg_krw"`
	OverKg      float64         `json:"over_kg"`
	FeeKRW      int             `json:"fee_krw"`
	Rules       string          `json:"rules"`
}

func (app *application) calculateFeeHandler(w http.ResponseWriter, r *http.Request) {
	var payload calculateFeePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if (payload.TotalWeight == nil) == (payload.ExcessWeight == nil) {
		app.badRequestResponse(w, r, fmt.Errorf("provide exactly one of total_weight or excess_weight"))
		return
	}

	// unrecognized airlines fall through to the zero-fee default row
	airline, _ := baggage.ParseAirline(payload.Airline)
	allowance := baggage.Lookup(airline)

	var (
		fee    int
		overKg float64
		err    error
	)
	if payload.TotalWeight != nil {
		fee, err = baggage.FeeFromTotalWeight(airline, *payload.TotalWeight)
		if over := *payload.TotalWeight - allowance.FreeKg; over > 0 {
			overKg = over
		}
	} else {
		fee, err = baggage.FeeFromExcessWeight(airline, *payload.ExcessWeight)
		overKg = *payload.ExcessWeight
	}
	if err != nil {
		var invalid *baggage.ErrInvalidWeight
		if errors.As(err, &invalid) {
			app.badRequestResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	resp := feeResponse{
		Airline:     airline,
		AllowanceKg: allowance.FreeKg,
		FeePerKgKRW: allowance.FeePerKgKRW,
		OverKg:      overKg,
		FeeKRW:      fee,
		Rules:       baggage.Rules(airline),
	}

	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}
