package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bazaarnow/marketplace/internal/app"
	"github.com/bazaarnow/marketplace/internal/catalog"
	"github.com/bazaarnow/marketplace/internal/events"
	"github.com/bazaarnow/marketplace/internal/handlers"
	"github.com/bazaarnow/marketplace/internal/identity"
	"github.com/bazaarnow/marketplace/internal/models"
	"github.com/bazaarnow/marketplace/internal/payment"
	"github.com/bazaarnow/marketplace/internal/search"
	"github.com/bazaarnow/marketplace/internal/state"
	httpserver "github.com/bazaarnow/marketplace/internal/transport/http"
)

type testEnv struct {
	t       *testing.T
	e       *echo.Echo
	cookies []*http.Cookie
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvPayment(t, time.Millisecond)
}

func newTestEnvPayment(t *testing.T, payDelay time.Duration) *testEnv {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.StateBlob{}))

	directory := identity.NewDirectory(db)
	require.NoError(t, directory.SeedDemo(t.Context(), "bazaar123"))

	cat := catalog.Default()
	core := app.NewCore(cat, state.NewStore(db))
	core.LoadState(t.Context())

	producer := events.NewProducer(nil)
	secret := []byte("test-secret")

	e := echo.New()
	httpserver.Register(e, &httpserver.Deps{
		Core:      core,
		JWTSecret: secret,
		AuthHandler: &handlers.AuthHandler{
			Core:      core,
			Directory: directory,
			JWTSecret: secret,
			Producer:  producer,
		},
		CatalogHandler:  &handlers.CatalogHandler{Catalog: cat},
		CartHandler:     &handlers.CartHandler{Core: core, Producer: producer},
		CheckoutHandler: &handlers.CheckoutHandler{Core: core, Payments: payment.New(payDelay), Producer: producer},
		OrderHandler:    &handlers.OrderHandler{Core: core, Producer: producer},
		SearchHandler:   &handlers.SearchHandler{Searcher: &search.CatalogSearcher{Catalog: cat}},
	})

	return &testEnv{t: t, e: e}
}

func (env *testEnv) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, ck := range env.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	env.cookies = append(env.cookies, rec.Result().Cookies()...)
	return rec
}

func (env *testEnv) loginStaff(role, email string) {
	rec := env.do(http.MethodPost, "/api/v1/login/"+role, map[string]string{
		"email":    email,
		"password": "bazaar123",
	})
	require.Equal(env.t, http.StatusOK, rec.Code)
}

func (env *testEnv) loginCustomer() {
	rec := env.do(http.MethodPost, "/api/v1/login/customer", map[string]string{
		"id":           "u1",
		"email":        "user@bazaarnow.com",
		"display_name": "Rahul Customer",
	})
	require.Equal(env.t, http.StatusOK, rec.Code)
}

func TestCatalogEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/v1/stores", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stores []models.Store
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stores))
	require.Len(t, stores, 6)

	rec = env.do(http.MethodGet, "/api/v1/products/p1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodGet, "/api/v1/products/nope", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodGet, "/api/v1/stores/s1/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var products []models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	for _, p := range products {
		require.Equal(t, "s1", p.StoreID)
	}
}

func TestCartFlow(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/v1/cart", map[string]string{"product_id": "p1"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(http.MethodPost, "/api/v1/cart", map[string]string{"product_id": "p1"})
	require.Equal(t, http.StatusOK, rec.Code)

	var entry models.CartEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entry))
	require.Equal(t, 2, entry.Quantity)

	rec = env.do(http.MethodPost, "/api/v1/cart", map[string]string{"product_id": "missing"})
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodPatch, "/api/v1/cart/p1", map[string]int{"delta": -5})
	require.Equal(t, http.StatusOK, rec.Code)
	var view struct {
		Items []models.CartEntry `json:"items"`
		Count int                `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Empty(t, view.Items)
	require.Zero(t, view.Count)
}

func TestCheckoutValidation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/v1/checkout", map[string]string{
		"phone": "123", "address": "",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Contains(t, resp.Errors, "name")
	require.Contains(t, resp.Errors, "phone")
	require.Contains(t, resp.Errors, "address")

	// valid form, empty cart
	rec = env.do(http.MethodPost, "/api/v1/checkout", map[string]string{
		"name": "Rahul", "phone": "9876543210", "address": "Madhapur",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckoutRejectsCartClearedDuringPayment(t *testing.T) {
	env := newTestEnvPayment(t, 250*time.Millisecond)

	rec := env.do(http.MethodPost, "/api/v1/cart", map[string]string{"product_id": "p1"})
	require.Equal(t, http.StatusOK, rec.Code)

	// checkout runs concurrently; the shared env cookie jar is not
	// touched from the goroutine
	done := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		if err := enc.Encode(map[string]string{
			"name": "Rahul", "phone": "9876543210", "address": "Madhapur",
		}); err != nil {
			t.Error(err)
		}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", &buf)
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		env.e.ServeHTTP(rec, req)
		done <- rec
	}()

	// empty the cart while the payment delay is still running
	time.Sleep(50 * time.Millisecond)
	rec = env.do(http.MethodDelete, "/api/v1/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	checkout := <-done
	require.Equal(t, http.StatusBadRequest, checkout.Code)

	// no fee-only order was minted
	env.loginStaff("admin", "admin@bazaarnow.com")
	rec = env.do(http.MethodGet, "/api/v1/orders/admin", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var orders []models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	require.Empty(t, orders)
}

func TestCheckoutAndOrderLifecycle(t *testing.T) {
	env := newTestEnv(t)
	env.loginCustomer()

	rec := env.do(http.MethodPost, "/api/v1/cart", map[string]string{"product_id": "p1"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodPost, "/api/v1/checkout", map[string]string{
		"name": "Rahul", "phone": "9876543210", "address": "Madhapur", "payment_method": "UPI",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var o models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &o))
	require.Equal(t, models.StatusPlaced, o.Status)
	require.Equal(t, "u1", o.CustomerID)
	require.Equal(t, o.Subtotal+o.DeliveryFee, o.Total)

	// cart emptied by checkout
	rec = env.do(http.MethodGet, "/api/v1/cart", nil)
	var view struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Zero(t, view.Count)

	// customer sees own order
	rec = env.do(http.MethodGet, "/api/v1/orders/customer", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var orders []models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	require.Len(t, orders, 1)

	// customer cannot change status
	rec = env.do(http.MethodPost, "/api/v1/orders/customer/"+o.ID+"/status", map[string]string{"status": "approved"})
	require.Equal(t, http.StatusForbidden, rec.Code)

	// admin approves; skipping a step is rejected
	env.loginStaff("admin", "admin@bazaarnow.com")
	rec = env.do(http.MethodPost, "/api/v1/orders/admin/"+o.ID+"/status", map[string]string{"status": "delivered"})
	require.Equal(t, http.StatusConflict, rec.Code)
	rec = env.do(http.MethodPost, "/api/v1/orders/admin/"+o.ID+"/status", map[string]string{"status": "approved"})
	require.Equal(t, http.StatusOK, rec.Code)

	// vendor bound to s1 sees the order and hands it to delivery
	env.loginStaff("vendor", "vendor@bazaarnow.com")
	rec = env.do(http.MethodGet, "/api/v1/orders/vendor", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	rec = env.do(http.MethodPost, "/api/v1/orders/vendor/"+o.ID+"/status", map[string]string{"status": "out_for_delivery"})
	require.Equal(t, http.StatusOK, rec.Code)

	// delivery sees it while out for delivery, then completes it
	env.loginStaff("delivery", "delivery@bazaarnow.com")
	rec = env.do(http.MethodGet, "/api/v1/orders/delivery", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	rec = env.do(http.MethodPost, "/api/v1/orders/delivery/"+o.ID+"/status", map[string]string{"status": "delivered"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodGet, "/api/v1/orders/delivery", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	require.Empty(t, orders)
}

func TestOrdersRequireSession(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/v1/orders/customer", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(http.MethodGet, "/api/v1/orders/superuser", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStaffLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/v1/login/admin", map[string]string{
		"email":    "admin@bazaarnow.com",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutIsRoleScoped(t *testing.T) {
	env := newTestEnv(t)
	env.loginCustomer()
	env.loginStaff("vendor", "vendor@bazaarnow.com")

	rec := env.do(http.MethodPost, "/api/v1/logout/customer", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodGet, "/api/v1/session/customer", nil)
	var sess struct {
		Active bool `json:"active"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sess))
	require.False(t, sess.Active)

	rec = env.do(http.MethodGet, "/api/v1/session/vendor", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sess))
	require.True(t, sess.Active)
}

func TestSearchEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/v1/search?q=milk", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Total    int64            `json:"total"`
		Products []models.Product `json:"products"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, int64(1), resp.Total)
	require.Equal(t, "Full Cream Milk", resp.Products[0].Name)

	rec = env.do(http.MethodGet, "/api/v1/search", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
