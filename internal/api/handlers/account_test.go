package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/smarterworkco/GPT-UI/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountHandler_GetUser(t *testing.T) {
	f := newFixture(t)
	h := NewAccountHandler(f.repo, f.repo)

	w := httptest.NewRecorder()
	h.GetUser(w, f.request(http.MethodGet, "/api/user", nil, nil))

	require.Equal(t, http.StatusOK, w.Code)
	user := decodeBody[map[string]interface{}](t, w)
	assert.Equal(t, "owner", user["username"])
	_, hasPassword := user["password"]
	assert.False(t, hasPassword)
}

func TestAccountHandler_GetUserMissing(t *testing.T) {
	f := newFixture(t)
	h := NewAccountHandler(f.repo, f.repo)

	w := httptest.NewRecorder()
	h.GetUser(w, authedRequest(http.MethodGet, "/api/user", nil, 999, nil, nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestAccountHandler_GetBusiness(t *testing.T) {
	f := newFixture(t)
	h := NewAccountHandler(f.repo, f.repo)

	w := httptest.NewRecorder()
	h.GetBusiness(w, f.request(http.MethodGet, "/api/business", nil, nil))

	require.Equal(t, http.StatusOK, w.Code)
	biz := decodeBody[domain.Business](t, w)
	assert.Equal(t, "Owner Co", biz.Name)
	assert.Equal(t, domain.DefaultPrimaryColor, biz.PrimaryColor)
	assert.Contains(t, w.Body.String(), `"description":null`)
}

func TestAccountHandler_UpdateBusiness(t *testing.T) {
	f := newFixture(t)
	h := NewAccountHandler(f.repo, f.repo)

	w := httptest.NewRecorder()
	h.UpdateBusiness(w, f.request(http.MethodPut, "/api/business", map[string]string{
		"name":         "Renamed Co",
		"industry":     "retail",
		"primaryColor": "#000000",
	}, nil))

	require.Equal(t, http.StatusOK, w.Code)
	biz := decodeBody[domain.Business](t, w)
	assert.Equal(t, "Renamed Co", biz.Name)
	require.NotNil(t, biz.Industry)
	assert.Equal(t, "retail", *biz.Industry)
	assert.Equal(t, "#000000", biz.PrimaryColor)
	assert.Equal(t, domain.DefaultAccentColor, biz.AccentColor)
}

func TestAccountHandler_UpdateBusinessValidation(t *testing.T) {
	f := newFixture(t)
	h := NewAccountHandler(f.repo, f.repo)

	w := httptest.NewRecorder()
	h.UpdateBusiness(w, f.request(http.MethodPut, "/api/business", map[string]string{
		"primaryColor": "purple",
	}, nil))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"name"`)
	assert.Contains(t, w.Body.String(), `"field":"primaryColor"`)
}

func TestAccountHandler_UpdateBusinessClearsOptionalFields(t *testing.T) {
	f := newFixture(t)
	h := NewAccountHandler(f.repo, f.repo)

	w := httptest.NewRecorder()
	h.UpdateBusiness(w, f.request(http.MethodPut, "/api/business", map[string]string{
		"name":         "Owner Co",
		"logoUrl":      "https://cdn.example.com/logo.png",
		"primaryColor": "#112233",
		"accentColor":  "#445566",
	}, nil))
	require.Equal(t, http.StatusOK, w.Code)
	biz := decodeBody[domain.Business](t, w)
	require.NotNil(t, biz.LogoURL)
	assert.Equal(t, "#112233", biz.PrimaryColor)

	w = httptest.NewRecorder()
	h.UpdateBusiness(w, f.request(http.MethodPut, "/api/business", map[string]string{
		"name":         "Owner Co",
		"logoUrl":      "",
		"primaryColor": "",
		"accentColor":  "",
	}, nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	biz = decodeBody[domain.Business](t, w)
	assert.Nil(t, biz.LogoURL)
	assert.Equal(t, domain.DefaultPrimaryColor, biz.PrimaryColor)
	assert.Equal(t, domain.DefaultAccentColor, biz.AccentColor)
}

func TestAccountHandler_UpdateBusinessRejectsBadLogoURL(t *testing.T) {
	f := newFixture(t)
	h := NewAccountHandler(f.repo, f.repo)

	w := httptest.NewRecorder()
	h.UpdateBusiness(w, f.request(http.MethodPut, "/api/business", map[string]string{
		"name":    "Owner Co",
		"logoUrl": "not a url",
	}, nil))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"logoUrl must be a valid URL"`)
}
