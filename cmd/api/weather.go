package main

import (
	"fmt"
	"net/http"
)

func (app *application) weatherHandler(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	if city == "" {
		app.badRequestResponse(w, r, fmt.Errorf("city query parameter is required"))
		return
	}

	forecast, err := app.weather.Forecast(r.Context(), city)
	if err != nil {
		app.badGatewayResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, forecast); err != nil {
		app.internalServerError(w, r, err)
	}
}
