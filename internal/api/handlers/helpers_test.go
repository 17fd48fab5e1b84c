package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/smarterworkco/GPT-UI/internal/api/middleware"
	"github.com/smarterworkco/GPT-UI/internal/domain"
	"github.com/smarterworkco/GPT-UI/internal/repository"
	"github.com/stretchr/testify/require"
)

// fixture is a memory repository holding one user with one business
type fixture struct {
	repo     *repository.MemoryRepository
	user     *domain.User
	business *domain.Business
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	repo := repository.NewMemoryRepository()

	user, err := repo.CreateUser(ctx, domain.CreateUserInput{Username: "owner", Email: "owner@example.com", Password: "hash"})
	require.NoError(t, err)
	biz, err := repo.CreateBusiness(ctx, domain.CreateBusinessInput{Name: "Owner Co", UserID: user.ID})
	require.NoError(t, err)

	return &fixture{repo: repo, user: user, business: biz}
}

// otherBusiness creates a second tenant
func (f *fixture) otherBusiness(t *testing.T) *domain.Business {
	t.Helper()
	ctx := context.Background()
	user, err := f.repo.CreateUser(ctx, domain.CreateUserInput{Username: "other", Email: "other@example.com", Password: "hash"})
	require.NoError(t, err)
	biz, err := f.repo.CreateBusiness(ctx, domain.CreateBusinessInput{Name: "Other Co", UserID: user.ID})
	require.NoError(t, err)
	return biz
}

func (f *fixture) request(method, path string, body interface{}, params map[string]string) *http.Request {
	return authedRequest(method, path, body, f.user.ID, f.business, params)
}

func authedRequest(method, path string, body interface{}, userID int64, biz *domain.Business, params map[string]string) *http.Request {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		buf, _ := json.Marshal(b)
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, reader)
	ctx := middleware.WithUserID(req.Context(), userID)
	if biz != nil {
		ctx = middleware.WithBusiness(ctx, biz)
	}

	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}
