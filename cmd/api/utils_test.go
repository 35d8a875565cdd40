package main

import (
	"net/http"
	"net/http/httptest"
	"time"

	"easypack/internal/auth"
	"easypack/internal/kv"
	"easypack/internal/ratelimiter"
	"easypack/internal/store"

	"go.uber.org/zap"
)

func newTestApplication() *application {
	cfg := config{
		addr: ":0",
		env:  "test",
		auth: authConfig{
			basic: basicConfig{user: "admin", pass: "admin"},
			token: tokenConfig{secret: "test-secret", refreshSecret: "test-refresh-secret", iss: "EasyPack"},
		},
		rateLimiter: ratelimiter.Config{
			RequestsPerTimeFrame: 1000,
			TimeFrame:            time.Second,
			Enabled:              false,
		},
	}

	return &application{
		config:        cfg,
		logger:        zap.NewNop().Sugar(),
		store:         store.NewStorage(nil, kv.NewMemory()),
		authenticator: auth.NewJWTAuthenticator(cfg.auth.token.secret, cfg.auth.token.refreshSecret, cfg.auth.token.iss, cfg.auth.token.iss),
		rateLimiter:   ratelimiter.NewFixedWindowLimiter(cfg.rateLimiter.RequestsPerTimeFrame, cfg.rateLimiter.TimeFrame),
	}
}

func executeRequest(req *http.Request, mux http.Handler) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	return rr
}
