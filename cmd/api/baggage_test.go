package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postFee(t *testing.T, mux http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, "/v1/baggage/fee", bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	return executeRequest(req, mux)
}

func decodeFee(t *testing.T, rr *httptest.ResponseRecorder) feeResponse {
	t.Helper()

	var envelope struct {
		Data feeResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))

	return envelope.Data
}

func TestCalculateFeeHandler(t *testing.T) {
	app := newTestApplication()
	mux := app.mount()

	t.Run("total weight over allowance", func(t *testing.T) {
		rr := postFee(t, mux, `{"airline": "Korean Air", "total_weight": 25}`)

		require.Equal(t, http.StatusOK, rr.Code)
		fee := decodeFee(t, rr)
		assert.Equal(t, 20000, fee.FeeKRW)
		assert.Equal(t, 2.0, fee.OverKg)
		assert.Equal(t, 23.0, fee.AllowanceKg)
	})

	t.Run("total weight within allowance", func(t *testing.T) {
		rr := postFee(t, mux, `{"airline": "Jin Air", "total_weight": 20}`)

		require.Equal(t, http.StatusOK, rr.Code)
		fee := decodeFee(t, rr)
		assert.Equal(t, 0, fee.FeeKRW)
		assert.Equal(t, 0.0, fee.OverKg)
	})

	t.Run("excess weight", func(t *testing.T) {
		rr := postFee(t, mux, `{"airline": "Jeju Air", "excess_weight": 3}`)

		require.Equal(t, http.StatusOK, rr.Code)
		fee := decodeFee(t, rr)
		assert.Equal(t, 6000, fee.FeeKRW)
		assert.Equal(t, 3.0, fee.OverKg)
	})

	t.Run("korean alias resolves", func(t *testing.T) {
		rr := postFee(t, mux, `{"airline": "대한항공", "total_weight": 24}`)

		require.Equal(t, http.StatusOK, rr.Code)
		fee := decodeFee(t, rr)
		assert.Equal(t, 10000, fee.FeeKRW)
	})

	t.Run("unknown airline charges nothing", func(t *testing.T) {
		rr := postFee(t, mux, `{"airline": "Mystery Air", "total_weight": 40}`)

		require.Equal(t, http.StatusOK, rr.Code)
		fee := decodeFee(t, rr)
		assert.Equal(t, 0, fee.FeeKRW)
		assert.Equal(t, 0.0, fee.AllowanceKg)
	})

	t.Run("both weights rejected", func(t *testing.T) {
		rr := postFee(t, mux, `{"airline": "Korean Air", "total_weight": 25, "excess_weight": 2}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("neither weight rejected", func(t *testing.T) {
		rr := postFee(t, mux, `{"airline": "Korean Air"}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("negative weight rejected", func(t *testing.T) {
		rr := postFee(t, mux, `{"airline": "Korean Air", "total_weight": -5}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("missing airline rejected", func(t *testing.T) {
		rr := postFee(t, mux, `{"total_weight": 25}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestListAllowancesHandler(t *testing.T) {
	app := newTestApplication()
	mux := app.mount()

	req, err := http.NewRequest(http.MethodGet, "/v1/baggage/allowances", nil)
	require.NoError(t, err)

	rr := executeRequest(req, mux)
	require.Equal(t, http.StatusOK, rr.Code)

	var envelope struct {
		Data []struct {
			Airline     string  `json:"airline"`
			FreeKg      float64 `json:"free_kg"`
			FeePerKgKRW int     `json:"fee_per_kg_krw"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))

	require.Len(t, envelope.Data, 5)
	assert.Equal(t, "Korean Air", envelope.Data[0].Airline)
	assert.Equal(t, 23.0, envelope.Data[0].FreeKg)
	assert.Equal(t, 10000, envelope.Data[0].FeePerKgKRW)
}
