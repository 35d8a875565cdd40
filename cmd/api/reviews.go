package main

import (
	"errors"
	"net/http"

	"easypack/internal/params"
	"easypack/internal/store"

	"github.com/go-chi/chi/v5"
)

type createReviewPayload struct {
	Country string `json:"country" validate:"required"`
	Rating  int    `json:"rating" validate:"min=0,max=5"`
	Review  string `json:"review" validate:"required,max=2000"`
	Title   string `json:"title" validate:"omitempty,max=100"`
}

func (app *application) createReviewHandler(w http.ResponseWriter, r *http.Request) {
	var payload createReviewPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	country, _ := store.ParseCountry(payload.Country)

	review, err := app.store.Reviews.Create(r.Context(), country, payload.Rating, payload.Review, payload.Title)
	if err != nil {
		app.reviewStoreError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, review); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) listReviewsHandler(w http.ResponseWriter, r *http.Request) {
	reviews, err := app.store.Reviews.List(r.Context())
	if err != nil {
		app.reviewStoreError(w, r, err)
		return
	}

	p := params.ParsePagination(r.URL.Query())
	p.ComputeMeta(len(reviews))
	from, to := p.Slice(len(reviews))

	response := map[string]interface{}{
		"reviews":    reviews[from:to],
		"pagination": p,
	}

	if err := app.jsonResponse(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) deleteReviewHandler(w http.ResponseWriter, r *http.Request) {
	reviewID := chi.URLParam(r, "reviewID")

	if err := app.store.Reviews.Delete(r.Context(), reviewID); err != nil {
		app.reviewStoreError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, map[string]string{"message": "review deleted"})
}

func (app *application) toggleReviewLikeHandler(w http.ResponseWriter, r *http.Request) {
	reviewID := chi.URLParam(r, "reviewID")

	if err := app.store.Reviews.ToggleLike(r.Context(), reviewID); err != nil {
		app.reviewStoreError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, map[string]string{"message": "like toggled"})
}

func (app *application) resetSnapshotHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.store.Reviews.Reset(r.Context()); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, map[string]string{"message": "review snapshot cleared"})
}

// reviewStoreError maps store errors onto responses: rejected input is the
// caller's fault, a corrupt snapshot is ours.
func (app *application) reviewStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case store.IsValidation(err):
		app.badRequestResponse(w, r, err)
	case errors.Is(err, store.ErrNotFound):
		app.notFoundResponse(w, r, err)
	case errors.Is(err, store.ErrCorruptSnapshot):
		app.internalServerError(w, r, err)
	default:
		app.internalServerError(w, r, err)
	}
}
