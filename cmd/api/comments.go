package main

import (
	"errors"
	"net/http"

	"easypack/internal/store"

	"github.com/go-chi/chi/v5"
)

type commentPayload struct {
	Author string `json:"author" validate:"required,max=50"`
	Text   string `json:"text" validate:"required,max=500"`
}

func (app *application) addCommentHandler(w http.ResponseWriter, r *http.Request) {
	reviewID := chi.URLParam(r, "reviewID")

	var payload commentPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	comment, err := app.store.Reviews.AddComment(r.Context(), reviewID, payload.Author, payload.Text)
	if err != nil {
		app.reviewStoreError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, comment); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) deleteCommentHandler(w http.ResponseWriter, r *http.Request) {
	reviewID := chi.URLParam(r, "reviewID")
	commentID := chi.URLParam(r, "commentID")

	if err := app.store.Reviews.DeleteComment(r.Context(), reviewID, commentID); err != nil {
		app.reviewStoreError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, map[string]string{"message": "comment deleted"})
}

func (app *application) likeCommentHandler(w http.ResponseWriter, r *http.Request) {
	commentID := chi.URLParam(r, "commentID")

	err := app.store.Reviews.LikeComment(r.Context(), commentID)
	if err != nil {
		// already liked is informational, not a failure
		if errors.Is(err, store.ErrAlreadyLiked) {
			app.jsonResponse(w, http.StatusOK, map[string]any{"already_liked": true})
			return
		}
		app.reviewStoreError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, map[string]any{"already_liked": false})
}

func (app *application) addReplyHandler(w http.ResponseWriter, r *http.Request) {
	reviewID := chi.URLParam(r, "reviewID")
	commentID := chi.URLParam(r, "commentID")

	var payload commentPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	reply, err := app.store.Reviews.AddReply(r.Context(), reviewID, commentID, payload.Author, payload.Text)
	if err != nil {
		app.reviewStoreError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, reply); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) deleteReplyHandler(w http.ResponseWriter, r *http.Request) {
	reviewID := chi.URLParam(r, "reviewID")
	commentID := chi.URLParam(r, "commentID")
	replyID := chi.URLParam(r, "replyID")

	if err := app.store.Reviews.DeleteReply(r.Context(), reviewID, commentID, replyID); err != nil {
		app.reviewStoreError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, map[string]string{"message": "reply deleted"})
}

func (app *application) likeReplyHandler(w http.ResponseWriter, r *http.Request) {
	replyID := chi.URLParam(r, "replyID")

	err := app.store.Reviews.LikeReply(r.Context(), replyID)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyLiked) {
			app.jsonResponse(w, http.StatusOK, map[string]any{"already_liked": true})
			return
		}
		app.reviewStoreError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, map[string]any{"already_liked": false})
}
