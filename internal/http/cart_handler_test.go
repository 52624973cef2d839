package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YottademTech/ecommerce-mini-app/internal/catalog"
	"github.com/YottademTech/ecommerce-mini-app/internal/identity"
	"github.com/YottademTech/ecommerce-mini-app/internal/order"
	"github.com/YottademTech/ecommerce-mini-app/internal/service"
	"github.com/YottademTech/ecommerce-mini-app/internal/session"
)

type submitterStub struct {
	err   error
	calls int
}

func (s *submitterStub) Submit(context.Context, order.Payload) error {
	s.calls++
	return s.err
}

func newTestService(t *testing.T, submitter service.OrderSubmitter) *service.Storefront {
	t.Helper()
	store := session.NewMemoryStore(time.Minute)
	t.Cleanup(store.Stop)
	return service.NewStorefront(
		store,
		catalog.Default(),
		submitter,
		identity.InitDataProvider{},
		10*time.Millisecond,
	)
}

func withSession(r *http.Request, sessionID string) *http.Request {
	ctx := context.WithValue(r.Context(), "session_id", sessionID)
	return r.WithContext(ctx)
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestGetCart_EmptySession(t *testing.T) {
	handler := NewCartHandler(newTestService(t, &submitterStub{}), 5*time.Second)

	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("GET", "/", nil), "sess-1")

	handler.GetCart(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	var dto CartDTO
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &dto))
	assert.Empty(t, dto.Lines)
	assert.Equal(t, "0.00", dto.Total)
}

func TestGetCart_MissingSession(t *testing.T) {
	handler := NewCartHandler(newTestService(t, &submitterStub{}), 5*time.Second)

	recorder := httptest.NewRecorder()
	handler.GetCart(recorder, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestAddItem_Success(t *testing.T) {
	handler := NewCartHandler(newTestService(t, &submitterStub{}), 5*time.Second)

	body, _ := json.Marshal(AddItemRequestDTO{ItemID: "burger"})
	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("POST", "/", bytes.NewReader(body)), "sess-1")

	handler.AddItem(recorder, request)

	assert.Equal(t, http.StatusCreated, recorder.Code)
	var dto CartDTO
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &dto))
	require.Len(t, dto.Lines, 1)
	assert.Equal(t, "burger", dto.Lines[0].ItemID)
	assert.Equal(t, 1, dto.Lines[0].Quantity)
	assert.Equal(t, "4.99", dto.Total)
}

func TestAddItem_UnknownItem(t *testing.T) {
	handler := NewCartHandler(newTestService(t, &submitterStub{}), 5*time.Second)

	body, _ := json.Marshal(AddItemRequestDTO{ItemID: "sushi"})
	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("POST", "/", bytes.NewReader(body)), "sess-1")

	handler.AddItem(recorder, request)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestAddItem_InvalidBody(t *testing.T) {
	handler := NewCartHandler(newTestService(t, &submitterStub{}), 5*time.Second)

	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("POST", "/", bytes.NewReader([]byte("{"))), "sess-1")

	handler.AddItem(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestIncrementDecrementRemove(t *testing.T) {
	svc := newTestService(t, &submitterStub{})
	handler := NewCartHandler(svc, 5*time.Second)

	_, err := svc.AddItem(context.Background(), "sess-1", "fries")
	require.NoError(t, err)

	// Increment to 2.
	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("POST", "/", nil), "sess-1")
	request = withURLParam(request, "item_id", "fries")
	handler.IncrementItem(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	var dto CartDTO
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &dto))
	require.Len(t, dto.Lines, 1)
	assert.Equal(t, 2, dto.Lines[0].Quantity)
	assert.Equal(t, "2.98", dto.Total)

	// Decrement back to 1.
	recorder = httptest.NewRecorder()
	request = withSession(httptest.NewRequest("POST", "/", nil), "sess-1")
	request = withURLParam(request, "item_id", "fries")
	handler.DecrementItem(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &dto))
	require.Len(t, dto.Lines, 1)
	assert.Equal(t, 1, dto.Lines[0].Quantity)

	// Remove the line entirely.
	recorder = httptest.NewRecorder()
	request = withSession(httptest.NewRequest("DELETE", "/", nil), "sess-1")
	request = withURLParam(request, "item_id", "fries")
	handler.RemoveItem(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &dto))
	assert.Empty(t, dto.Lines)
	assert.Equal(t, "0.00", dto.Total)
}

func TestClearCart(t *testing.T) {
	svc := newTestService(t, &submitterStub{})
	handler := NewCartHandler(svc, 5*time.Second)

	ctx := context.Background()
	_, err := svc.AddItem(ctx, "sess-1", "burger")
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "sess-1", "coke")
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("DELETE", "/", nil), "sess-1")
	handler.ClearCart(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	var dto CartDTO
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &dto))
	assert.Empty(t, dto.Lines)
}

func TestGetMenu_IncludesCartQuantities(t *testing.T) {
	svc := newTestService(t, &submitterStub{})
	handler := NewMenuHandler(svc, 5*time.Second)

	_, err := svc.AddItem(context.Background(), "sess-1", "pizza")
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("GET", "/", nil), "sess-1")
	handler.GetMenu(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	var dto MenuDTO
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &dto))
	require.Len(t, dto.Items, 12)

	byID := map[string]MenuItemDTO{}
	for _, item := range dto.Items {
		byID[item.ID] = item
	}
	assert.Equal(t, 1, byID["pizza"].Quantity)
	assert.Equal(t, 0, byID["burger"].Quantity)
	assert.True(t, byID["cake"].IsNew)
	assert.True(t, byID["cake"].Featured)
	assert.Equal(t, "1.00", byID["cake"].Price)
}

func TestSessionMiddleware_MintsCookie(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = getSessionIDFromContext(r.Context())
	})

	recorder := httptest.NewRecorder()
	SessionMiddleware(next).ServeHTTP(recorder, httptest.NewRequest("GET", "/", nil))

	require.NotEmpty(t, seen)
	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, sessionCookie, cookies[0].Name)
	assert.Equal(t, seen, cookies[0].Value)
}

func TestSessionMiddleware_ReusesCookie(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = getSessionIDFromContext(r.Context())
	})

	request := httptest.NewRequest("GET", "/", nil)
	request.AddCookie(&http.Cookie{Name: sessionCookie, Value: "sess-existing"})

	recorder := httptest.NewRecorder()
	SessionMiddleware(next).ServeHTTP(recorder, request)

	assert.Equal(t, "sess-existing", seen)
	assert.Empty(t, recorder.Result().Cookies())
}
