package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"easypack/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, mux http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	return executeRequest(req, mux)
}

func createReview(t *testing.T, mux http.Handler, country string, rating int, text string) store.Review {
	t.Helper()

	body := fmt.Sprintf(`{"country": %q, "rating": %d, "review": %q}`, country, rating, text)
	rr := postJSON(t, mux, "/v1/reviews", body)
	require.Equal(t, http.StatusCreated, rr.Code)

	var envelope struct {
		Data store.Review `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))

	return envelope.Data
}

func TestCreateReviewHandler(t *testing.T) {
	app := newTestApplication()
	mux := app.mount()

	t.Run("valid review", func(t *testing.T) {
		review := createReview(t, mux, "japan", 5, "Pack light, trains are crowded")

		assert.NotEmpty(t, review.ID)
		assert.Equal(t, store.CountryJapan, review.Country)
		assert.Equal(t, 5, review.Rating)
		assert.Empty(t, review.Comments)
	})

	t.Run("korean country alias", func(t *testing.T) {
		review := createReview(t, mux, "일본", 4, "Bring an umbrella in June")

		assert.Equal(t, store.CountryJapan, review.Country)
	})

	t.Run("unknown country rejected", func(t *testing.T) {
		rr := postJSON(t, mux, "/v1/reviews", `{"country": "atlantis", "rating": 3, "review": "hm"}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("blank review text rejected", func(t *testing.T) {
		rr := postJSON(t, mux, "/v1/reviews", `{"country": "usa", "rating": 3, "review": "   "}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("rating out of range rejected", func(t *testing.T) {
		rr := postJSON(t, mux, "/v1/reviews", `{"country": "usa", "rating": 6, "review": "too good"}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestBoardHandler(t *testing.T) {
	app := newTestApplication()
	mux := app.mount()

	createReview(t, mux, "japan", 5, "first japan post")
	createReview(t, mux, "usa", 4, "usa post")
	createReview(t, mux, "japan", 3, "second japan post")

	t.Run("filters by country newest first", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, "/v1/boards/japan", nil)
		require.NoError(t, err)

		rr := executeRequest(req, mux)
		require.Equal(t, http.StatusOK, rr.Code)

		var envelope struct {
			Data struct {
				Country store.Country  `json:"country"`
				Label   string         `json:"label"`
				Posts   []store.Review `json:"posts"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))

		assert.Equal(t, store.CountryJapan, envelope.Data.Country)
		require.Len(t, envelope.Data.Posts, 2)
		assert.Equal(t, "second japan post", envelope.Data.Posts[0].Review)
		assert.Equal(t, "first japan post", envelope.Data.Posts[1].Review)
	})

	t.Run("unknown board rejected", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, "/v1/boards/narnia", nil)
		require.NoError(t, err)

		rr := executeRequest(req, mux)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestLatestPostsHandler(t *testing.T) {
	app := newTestApplication()
	mux := app.mount()

	createReview(t, mux, "thailand", 4, "older thailand post")
	createReview(t, mux, "thailand", 5, "newer thailand post")
	createReview(t, mux, "vietnam", 3, "vietnam post")

	req, err := http.NewRequest(http.MethodGet, "/v1/community/latest", nil)
	require.NoError(t, err)

	rr := executeRequest(req, mux)
	require.Equal(t, http.StatusOK, rr.Code)

	var envelope struct {
		Data map[store.Country]store.Review `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))

	require.Len(t, envelope.Data, 2)
	assert.Equal(t, "newer thailand post", envelope.Data[store.CountryThailand].Review)
	assert.Equal(t, "vietnam post", envelope.Data[store.CountryVietnam].Review)
}

func TestPopularPostsHandler(t *testing.T) {
	app := newTestApplication()
	mux := app.mount()

	review := createReview(t, mux, "philippines", 5, "well liked post")
	createReview(t, mux, "usa", 2, "ignored post")

	// 5 comments push the first post over the popularity threshold
	for i := 0; i < 5; i++ {
		body := fmt.Sprintf(`{"author": "user%d", "text": "tip %d"}`, i, i)
		rr := postJSON(t, mux, "/v1/reviews/"+review.ID+"/comments", body)
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	req, err := http.NewRequest(http.MethodGet, "/v1/community/popular", nil)
	require.NoError(t, err)

	rr := executeRequest(req, mux)
	require.Equal(t, http.StatusOK, rr.Code)

	var envelope struct {
		Data []store.Review `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))

	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "well liked post", envelope.Data[0].Review)
}

func TestReviewLifecycleOverHTTP(t *testing.T) {
	app := newTestApplication()
	mux := app.mount()

	review := createReview(t, mux, "usa", 4, "lifecycle post")

	t.Run("toggle like", func(t *testing.T) {
		rr := postJSON(t, mux, "/v1/reviews/"+review.ID+"/like", "")
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	var commentID string
	t.Run("add comment", func(t *testing.T) {
		rr := postJSON(t, mux, "/v1/reviews/"+review.ID+"/comments", `{"author": "minji", "text": "which terminal?"}`)
		require.Equal(t, http.StatusCreated, rr.Code)

		var envelope struct {
			Data store.Comment `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
		commentID = envelope.Data.ID
		require.NotEmpty(t, commentID)
	})

	t.Run("like comment once", func(t *testing.T) {
		rr := postJSON(t, mux, "/v1/comments/"+commentID+"/like", "")
		require.Equal(t, http.StatusOK, rr.Code)

		rr = postJSON(t, mux, "/v1/comments/"+commentID+"/like", "")
		require.Equal(t, http.StatusOK, rr.Code)

		var envelope struct {
			Data map[string]any `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
		assert.Equal(t, true, envelope.Data["already_liked"])
	})

	t.Run("reply to comment", func(t *testing.T) {
		rr := postJSON(t, mux, "/v1/reviews/"+review.ID+"/comments/"+commentID+"/replies", `{"author": "hana", "text": "terminal 2"}`)
		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("comment on missing review", func(t *testing.T) {
		rr := postJSON(t, mux, "/v1/reviews/999/comments", `{"author": "minji", "text": "hello?"}`)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("delete review", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodDelete, "/v1/reviews/"+review.ID, nil)
		require.NoError(t, err)

		rr := executeRequest(req, mux)
		assert.Equal(t, http.StatusOK, rr.Code)

		// deleting again is a no-op
		rr = executeRequest(req, mux)
		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestResetSnapshotHandler(t *testing.T) {
	app := newTestApplication()
	mux := app.mount()

	createReview(t, mux, "japan", 5, "soon to be gone")

	t.Run("requires basic auth", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodDelete, "/v1/reviews-snapshot", nil)
		require.NoError(t, err)

		rr := executeRequest(req, mux)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("wipes every review", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodDelete, "/v1/reviews-snapshot", nil)
		require.NoError(t, err)
		req.SetBasicAuth("admin", "admin")

		rr := executeRequest(req, mux)
		require.Equal(t, http.StatusOK, rr.Code)

		listReq, err := http.NewRequest(http.MethodGet, "/v1/reviews", nil)
		require.NoError(t, err)

		listRR := executeRequest(listReq, mux)
		require.Equal(t, http.StatusOK, listRR.Code)

		var envelope struct {
			Data struct {
				Reviews []store.Review `json:"reviews"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(listRR.Body.Bytes(), &envelope))
		assert.Empty(t, envelope.Data.Reviews)
	})
}
