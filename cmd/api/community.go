package main

import (
	"fmt"
	"net/http"
	"strconv"

	"easypack/internal/store"

	"github.com/go-chi/chi/v5"
)

func (app *application) boardHandler(w http.ResponseWriter, r *http.Request) {
	country, ok := store.ParseCountry(chi.URLParam(r, "country"))
	if !ok {
		app.badRequestResponse(w, r, fmt.Errorf("unknown board %q", chi.URLParam(r, "country")))
		return
	}

	posts, err := app.store.Reviews.Board(r.Context(), country)
	if err != nil {
		app.reviewStoreError(w, r, err)
		return
	}

	response := map[string]interface{}{
		"country": country,
		"label":   country.Label(),
		"posts":   posts,
	}

	if err := app.jsonResponse(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) latestPostsHandler(w http.ResponseWriter, r *http.Request) {
	latest, err := app.store.Reviews.LatestPerCountry(r.Context())
	if err != nil {
		app.reviewStoreError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, latest); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) popularPostsHandler(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil {
			app.badRequestResponse(w, r, fmt.Errorf("invalid limit %q", limitStr))
			return
		}
		limit = parsed
	}

	popular, err := app.store.Reviews.Popular(r.Context(), limit)
	if err != nil {
		app.reviewStoreError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, popular); err != nil {
		app.internalServerError(w, r, err)
	}
}
