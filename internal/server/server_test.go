package server_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ecadmin/internal/config"
	"ecadmin/internal/domain/model"
	"ecadmin/internal/handler"
	infraRepo "ecadmin/internal/infra/repository"
	"ecadmin/internal/middleware"
	"ecadmin/internal/server"
	"ecadmin/internal/usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret"
	adminEmail = "owner@shop.test"
)

// =====================
// store mocks
// =====================

type OrderStoreMock struct{ mock.Mock }

func (m *OrderStoreMock) FetchAll(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderStoreMock) PatchStatus(ctx context.Context, id string, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *OrderStoreMock) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type RentalStoreMock struct{ mock.Mock }

func (m *RentalStoreMock) FetchAll(ctx context.Context) ([]model.RentalOrder, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]model.RentalOrder)
	return orders, args.Error(1)
}

func (m *RentalStoreMock) PatchStatus(ctx context.Context, id string, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *RentalStoreMock) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type fixedClock struct{}

func (fixedClock) Now() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

// =====================
// harness
// =====================

type harness struct {
	srv     *server.Server
	orders  *OrderStoreMock
	rentals *RentalStoreMock
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	orderStore := new(OrderStoreMock)
	rentalStore := new(RentalStoreMock)
	orderStore.On("FetchAll", mock.Anything).Return([]model.Order{
		{ID: "o1", Status: model.OrderStatusPending, TotalPrice: 100,
			Customer: &model.Customer{ID: "c1", FirstName: "Ann", LastName: "Lee", Email: "a@x.com", Phone: "555"}},
		{ID: "o2", Status: model.OrderStatusShipped, TotalPrice: 50,
			Customer: &model.Customer{ID: "c2", FirstName: "Bo", LastName: "Ng", Email: "b@x.com", Phone: "777"}},
	}, nil)
	rentalStore.On("FetchAll", mock.Anything).Return([]model.RentalOrder{
		{ID: "r1", Status: model.RentalStatusActive, TotalPrice: 30,
			Customer: &model.RentalCustomer{ID: "rc1", FullName: "Cy Ro"}},
	}, nil)

	audit := infraRepo.NewAuditLogDiscardRepository()
	orders := usecase.NewOrderDashboard(orderStore, audit, fixedClock{})
	rentals := usecase.NewRentalOrderDashboard(rentalStore, audit, fixedClock{})
	overview := usecase.NewOverviewUsecase(orders, rentals)
	require.NoError(t, overview.LoadAll(context.Background()))

	verifier, err := middleware.NewVerifier(testSecret, "")
	require.NoError(t, err)
	isAdmin := middleware.EmailAdmin(adminEmail)

	cfg := config.Config{Port: "0", FEURL: "http://localhost:3000"}
	srv := server.New(cfg, server.Routes{
		Verifier:     verifier,
		IsAdmin:      isAdmin,
		RedirectTo:   "/sign-in",
		Auth:         handler.NewAuthHandler(isAdmin),
		Dashboard:    handler.NewDashboardHandler(overview),
		Orders:       handler.NewAdminOrderHandler(orders),
		RentalOrders: handler.NewAdminOrderHandler(rentals),
		AuditLogs:    handler.NewAuditLogHandler(usecase.NewAuditLogUsecase(audit)),
	})

	return &harness{srv: srv, orders: orderStore, rentals: rentalStore}
}

func token(t *testing.T, email string) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":           "user_1",
		"primary_email": email,
		"exp":           time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return tok
}

func (h *harness) do(t *testing.T, method, path, bearer, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	h.srv.Echo().ServeHTTP(rec, req)
	return rec
}

type notificationBody struct {
	Error        string              `json:"error"`
	Notification *model.Notification `json:"notification"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body=%s", rec.Body.String())
	return v
}

// =====================
// public / auth
// =====================

func TestHealthz(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestAuthMe(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodGet, "/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = h.do(t, http.MethodGet, "/auth/me", token(t, "guest@shop.test"), "")
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[handler.MeResponse](t, rec)
	assert.Equal(t, "guest@shop.test", me.User.PrimaryEmail)
	assert.False(t, me.IsAdmin)

	rec = h.do(t, http.MethodGet, "/auth/me", token(t, adminEmail), "")
	me = decode[handler.MeResponse](t, rec)
	assert.True(t, me.IsAdmin)
}

func TestAdminRoutes_RedirectWhenNotAdmin(t *testing.T) {
	h := newHarness(t)

	paths := []string{"/admin/dashboard", "/admin/orders", "/admin/rental-orders", "/admin/audit-logs"}
	for _, p := range paths {
		rec := h.do(t, http.MethodGet, p, "", "")
		assert.Equal(t, http.StatusFound, rec.Code, p)
		assert.Equal(t, "/sign-in", rec.Header().Get("Location"), p)

		rec = h.do(t, http.MethodGet, p, token(t, "guest@shop.test"), "")
		assert.Equal(t, http.StatusFound, rec.Code, p)
	}

	rec := h.do(t, http.MethodDelete, "/admin/orders/o1", token(t, "guest@shop.test"), "")
	assert.Equal(t, http.StatusFound, rec.Code)
	h.orders.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

// =====================
// dashboard / list
// =====================

func TestDashboardSummary(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodGet, "/admin/dashboard", token(t, adminEmail), "")
	require.Equal(t, http.StatusOK, rec.Code)

	ov := decode[usecase.Overview](t, rec)
	assert.Equal(t, 2, ov.Orders.OrderCount)
	assert.Equal(t, 1, ov.Orders.PendingCount)
	assert.Equal(t, 1, ov.RentalOrders.OrderCount)
	assert.Equal(t, 3, ov.Total.OrderCount)
	assert.Equal(t, "180.00", ov.Total.TotalRevenue.StringFixed(2))
}

func TestListOrders_FilterAndSearch(t *testing.T) {
	h := newHarness(t)
	tok := token(t, adminEmail)

	rec := h.do(t, http.MethodGet, "/admin/orders?status=Pending", tok, "")
	require.Equal(t, http.StatusOK, rec.Code)
	v := decode[usecase.DashboardView[model.Order]](t, rec)
	require.Len(t, v.Records, 1)
	assert.Equal(t, "o1", v.Records[0].ID)
	assert.Equal(t, 2, v.Metrics.OrderCount)

	rec = h.do(t, http.MethodGet, "/admin/orders?q=ng", tok, "")
	v = decode[usecase.DashboardView[model.Order]](t, rec)
	require.Len(t, v.Records, 1)
	assert.Equal(t, "o2", v.Records[0].ID)

	rec = h.do(t, http.MethodGet, "/admin/orders?status=all", tok, "")
	v = decode[usecase.DashboardView[model.Order]](t, rec)
	assert.Len(t, v.Records, 2)

	rec = h.do(t, http.MethodGet, "/admin/orders?status=lost", tok, "")
	v = decode[usecase.DashboardView[model.Order]](t, rec)
	assert.Empty(t, v.Records)
}

func TestReload_FetchFailureReturns502(t *testing.T) {
	h := newHarness(t)

	h.orders.ExpectedCalls = nil
	h.orders.On("FetchAll", mock.Anything).Return(nil, errors.New("down"))

	rec := h.do(t, http.MethodPost, "/admin/orders/reload", token(t, adminEmail), "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	//前のスナップショットのまま
	rec = h.do(t, http.MethodGet, "/admin/orders", token(t, adminEmail), "")
	v := decode[usecase.DashboardView[model.Order]](t, rec)
	assert.Len(t, v.Records, 2)
}

// =====================
// writes
// =====================

func TestUpdateStatus(t *testing.T) {
	h := newHarness(t)
	tok := token(t, adminEmail)

	h.orders.On("PatchStatus", mock.Anything, "o1", "shipped").Return(nil)

	rec := h.do(t, http.MethodPut, "/admin/orders/o1/status", tok, `{"status":"SHIPPED"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode[notificationBody](t, rec)
	require.NotNil(t, body.Notification)
	assert.Equal(t, "Order Shipped", body.Notification.Title)

	rec = h.do(t, http.MethodPut, "/admin/orders/o1/status", tok, `{"status":"teleported"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = h.do(t, http.MethodPut, "/admin/orders/o1/status", tok, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = h.do(t, http.MethodPut, "/admin/orders/nope/status", tok, `{"status":"shipped"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateStatus_RemoteFailure(t *testing.T) {
	h := newHarness(t)

	h.rentals.On("PatchStatus", mock.Anything, "r1", "returned").Return(errors.New("503"))

	rec := h.do(t, http.MethodPut, "/admin/rental-orders/r1/status", token(t, adminEmail), `{"status":"returned"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	body := decode[notificationBody](t, rec)
	require.NotNil(t, body.Notification)
	assert.Equal(t, model.Notification{Title: "Error!", Text: "Failed to change status", Icon: model.NotificationError}, *body.Notification)
}

func TestComplete(t *testing.T) {
	h := newHarness(t)

	h.rentals.On("PatchStatus", mock.Anything, "r1", "completed").Return(nil)

	rec := h.do(t, http.MethodPost, "/admin/rental-orders/r1/complete", token(t, adminEmail), "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[notificationBody](t, rec)
	assert.Equal(t, "Order has been completed.", body.Notification.Text)
}

func TestDelete_PartialFailure(t *testing.T) {
	h := newHarness(t)
	tok := token(t, adminEmail)

	h.orders.On("Delete", mock.Anything, "o1").Return(nil)
	h.orders.On("Delete", mock.Anything, "c1").Return(errors.New("boom"))

	rec := h.do(t, http.MethodDelete, "/admin/orders/o1", tok, "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	body := decode[notificationBody](t, rec)
	require.NotNil(t, body.Notification)
	assert.Equal(t, model.NotificationWarning, body.Notification.Icon)

	rec = h.do(t, http.MethodGet, "/admin/orders", tok, "")
	v := decode[usecase.DashboardView[model.Order]](t, rec)
	require.Len(t, v.Records, 1)
	assert.Equal(t, "o2", v.Records[0].ID)
}

func TestDelete_Success(t *testing.T) {
	h := newHarness(t)

	h.orders.On("Delete", mock.Anything, "o2").Return(nil)
	h.orders.On("Delete", mock.Anything, "c2").Return(nil)

	rec := h.do(t, http.MethodDelete, "/admin/orders/o2", token(t, adminEmail), "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[notificationBody](t, rec)
	assert.Equal(t, "Deleted!", body.Notification.Title)
	h.orders.AssertExpectations(t)
}

func TestAuditLogs_DiscardRepoListsEmpty(t *testing.T) {
	h := newHarness(t)
	tok := token(t, adminEmail)

	rec := h.do(t, http.MethodGet, "/admin/audit-logs?action=update_status", tok, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = h.do(t, http.MethodGet, "/admin/audit-logs?limit=abc", tok, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = h.do(t, http.MethodGet, "/admin/audit-logs?actor_user_id=u1&from=2024-05-01T00:00:00Z&to=2024-05-02T00:00:00Z", tok, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = h.do(t, http.MethodGet, "/admin/audit-logs?from=yesterday", tok, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = h.do(t, http.MethodGet, "/admin/audit-logs?from=2024-05-02T00:00:00Z&to=2024-05-01T00:00:00Z", tok, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
