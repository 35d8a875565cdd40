package main

import (
	"fmt"
	"net/http"
)

func (app *application) detectHandler(w http.ResponseWriter, r *http.Request) {
	// 10 MB cap on the captured photo
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("unable to parse form: %w", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("unable to retrieve file: %w", err))
		return
	}
	defer file.Close()

	result, err := app.detector.Detect(r.Context(), header.Filename, file)
	if err != nil {
		app.badGatewayResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, result); err != nil {
		app.internalServerError(w, r, err)
	}
}
