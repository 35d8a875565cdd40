package main

import (
	"fmt"
	"net/http"
	"strings"

	"easypack/internal/baggage"
	"easypack/internal/store"
)

func (app *application) getCurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	if err := app.jsonResponse(w, http.StatusOK, user); err != nil {
		app.internalServerError(w, r, err)
	}
}

type UpdateUserPayload struct {
	Nickname          string `json:"nickname" validate:"omitempty,max=50"`
	TravelDestination string `json:"travelDestination" validate:"omitempty"`
	Airline           string `json:"airline" validate:"omitempty"`
	Password          string `json:"password" validate:"omitempty,min=3,max=72"`
}

func (app *application) updateUserHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	var payload UpdateUserPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	updates := map[string]interface{}{}
	if strings.TrimSpace(payload.Nickname) != "" {
		updates["nickname"] = strings.TrimSpace(payload.Nickname)
	}
	if payload.TravelDestination != "" {
		country, ok := store.ParseCountry(payload.TravelDestination)
		if !ok {
			app.badRequestResponse(w, r, fmt.Errorf("unknown destination %q", payload.TravelDestination))
			return
		}
		updates["travel_destination"] = string(country)
	}
	if payload.Airline != "" {
		airline, ok := baggage.ParseAirline(payload.Airline)
		if !ok {
			app.badRequestResponse(w, r, fmt.Errorf("unknown airline %q", payload.Airline))
			return
		}
		updates["airline"] = string(airline)
	}
	if strings.TrimSpace(payload.Password) != "" {
		hash, err := store.HashPassword(payload.Password)
		if err != nil {
			app.internalServerError(w, r, err)
			return
		}
		updates["password"] = hash
	}

	if len(updates) == 0 {
		app.badRequestResponse(w, r, fmt.Errorf("no fields to update"))
		return
	}

	if err := app.store.Users.Update(r.Context(), user.ID, updates); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	updated, err := app.store.Users.GetByID(r.Context(), user.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, updated); err != nil {
		app.internalServerError(w, r, err)
	}
}
