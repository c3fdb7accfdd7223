package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/octa-services/plant-tracker/internal/models"
	appErrors "github.com/octa-services/plant-tracker/pkg/errors"
)

type fakeAuthSrv struct {
	err  error
	last models.LoginRequest
}

func (f *fakeAuthSrv) Login(_ context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.LoginResponse{AccessToken: "token", ExpiresIn: 3600, IssuedAt: time.Now()}, nil
}

func TestAuthHandlerLogin(t *testing.T) {
	srv := &fakeAuthSrv{}
	h := NewAuthHandler(srv)

	c, rec := newSiteContext(http.MethodPost, "/auth/login", `{"username":"ahassan","password":"secret"}`)
	h.Login(c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ahassan", srv.last.Username)

	srv.err = appErrors.ErrInvalidCredentials
	c, rec = newSiteContext(http.MethodPost, "/auth/login", `{"username":"ahassan","password":"wrong"}`)
	h.Login(c)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
