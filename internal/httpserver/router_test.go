package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"tapto-backend/internal/auth"
	"tapto-backend/internal/domain"
	activityrepo "tapto-backend/internal/repository/activity"
	statsrepo "tapto-backend/internal/repository/stats"
	activitysvc "tapto-backend/internal/service/activity"
	addrsvc "tapto-backend/internal/service/address"
	cartsvc "tapto-backend/internal/service/cart"
	driversvc "tapto-backend/internal/service/driver"
	ordersvc "tapto-backend/internal/service/order"
	productsvc "tapto-backend/internal/service/product"
	usersvc "tapto-backend/internal/service/user"
)

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type stubUserSvc struct {
	user     *domain.User
	token    string
	err      error
	allUsers []domain.User
}

func (s *stubUserSvc) Register(_ context.Context, _ usersvc.RegisterInput, _ usersvc.RequestMeta) (*domain.User, string, error) {
	return s.user, s.token, s.err
}

func (s *stubUserSvc) Login(_ context.Context, _, _ string, _ usersvc.RequestMeta) (*domain.User, string, error) {
	return s.user, s.token, s.err
}

func (s *stubUserSvc) Profile(_ context.Context, _ string) (*domain.User, error) {
	return s.user, s.err
}

func (s *stubUserSvc) UpdateProfile(_ context.Context, _ string, _ usersvc.UpdateProfileInput, _ usersvc.RequestMeta) (*domain.User, error) {
	return s.user, s.err
}

func (s *stubUserSvc) ListAll(_ context.Context) ([]domain.User, error) {
	return s.allUsers, s.err
}

type stubCartSvc struct {
	cart *domain.Cart
	err  error
}

func (s *stubCartSvc) GetOrCreate(_ context.Context, _ string) (*domain.Cart, error) {
	return s.cart, s.err
}

func (s *stubCartSvc) AddItem(_ context.Context, _ string, _ cartsvc.ItemInput) (*domain.Cart, error) {
	return s.cart, s.err
}

func (s *stubCartSvc) UpdateItemQuantity(_ context.Context, _ string, _ cartsvc.ItemInput) (*domain.Cart, error) {
	return s.cart, s.err
}

func (s *stubCartSvc) RemoveItem(_ context.Context, _, _, _, _ string) (*domain.Cart, error) {
	return s.cart, s.err
}

func (s *stubCartSvc) Clear(_ context.Context, _ string) (*domain.Cart, error) {
	return s.cart, s.err
}

func (s *stubCartSvc) Sync(_ context.Context, _ string, _ []cartsvc.ItemInput) (*domain.Cart, error) {
	return s.cart, s.err
}

type stubOrderSvc struct {
	order      *domain.Order
	err        error
	getErr     error
	info       *ordersvc.TrackingInfo
	cancelArgs []string
}

func (s *stubOrderSvc) Create(_ context.Context, _ string, _ ordersvc.CreateInput) (*domain.Order, error) {
	return s.order, s.err
}

func (s *stubOrderSvc) UpdateStatus(_ context.Context, _ string, _ domain.OrderStatus) (*domain.Order, error) {
	return s.order, s.err
}

func (s *stubOrderSvc) Cancel(_ context.Context, orderID, reason string) (*domain.Order, error) {
	s.cancelArgs = []string{orderID, reason}
	return s.order, s.err
}

func (s *stubOrderSvc) AssignDriver(_ context.Context, _, _ string) (*domain.Order, error) {
	return s.order, s.err
}

func (s *stubOrderSvc) Track(_ context.Context, _ string) (*ordersvc.TrackingInfo, error) {
	return s.info, s.err
}

func (s *stubOrderSvc) UpdateLiveLocation(_ context.Context, _ string, _, _ float64) (*domain.Order, error) {
	return s.order, s.err
}

func (s *stubOrderSvc) GetForUser(_ context.Context, _, _ string, _ bool) (*domain.Order, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.order, nil
}

func (s *stubOrderSvc) ListMine(_ context.Context, _ string) ([]domain.Order, error) {
	return nil, s.err
}

func (s *stubOrderSvc) ListAll(_ context.Context) ([]domain.Order, error) {
	return nil, s.err
}

type stubProductSvc struct {
	page    *productsvc.Page
	product *domain.Product
	err     error
}

func (s *stubProductSvc) List(_ context.Context, _ productsvc.ListInput) (*productsvc.Page, error) {
	return s.page, s.err
}

func (s *stubProductSvc) Get(_ context.Context, _ string) (*domain.Product, error) {
	return s.product, s.err
}

func (s *stubProductSvc) Categories(_ context.Context) ([]string, error) {
	return nil, s.err
}

func (s *stubProductSvc) Create(_ context.Context, _ string, _ productsvc.Input) (*domain.Product, error) {
	return s.product, s.err
}

func (s *stubProductSvc) Update(_ context.Context, _ string, _ productsvc.Input) (*domain.Product, error) {
	return s.product, s.err
}

func (s *stubProductSvc) Delete(_ context.Context, _ string) error {
	return s.err
}

type stubAddressSvc struct {
	address *domain.Address
	err     error
}

func (s *stubAddressSvc) Create(_ context.Context, _ string, _ addrsvc.Input) (*domain.Address, error) {
	return s.address, s.err
}

func (s *stubAddressSvc) Update(_ context.Context, _, _ string, _ addrsvc.Input) (*domain.Address, error) {
	return s.address, s.err
}

func (s *stubAddressSvc) Get(_ context.Context, _, _ string) (*domain.Address, error) {
	return s.address, s.err
}

func (s *stubAddressSvc) List(_ context.Context, _ string) ([]domain.Address, error) {
	return nil, s.err
}

func (s *stubAddressSvc) Delete(_ context.Context, _, _ string) error {
	return s.err
}

func (s *stubAddressSvc) SetDefault(_ context.Context, _, _ string) (*domain.Address, error) {
	return s.address, s.err
}

type stubDriverSvc struct {
	driver *domain.DeliveryDriver
	err    error
}

func (s *stubDriverSvc) Create(_ context.Context, _ driversvc.Input) (*domain.DeliveryDriver, error) {
	return s.driver, s.err
}

func (s *stubDriverSvc) Update(_ context.Context, _ string, _ driversvc.Input) (*domain.DeliveryDriver, error) {
	return s.driver, s.err
}

func (s *stubDriverSvc) Get(_ context.Context, _ string) (*domain.DeliveryDriver, error) {
	return s.driver, s.err
}

func (s *stubDriverSvc) List(_ context.Context) ([]domain.DeliveryDriver, error) {
	return nil, s.err
}

func (s *stubDriverSvc) Delete(_ context.Context, _ string) error {
	return s.err
}

type stubActivitySvc struct {
	page  *activitysvc.Page
	stats *activityrepo.Stats
	err   error
}

func (s *stubActivitySvc) List(_ context.Context, _ activityrepo.Filter) (*activitysvc.Page, error) {
	return s.page, s.err
}

func (s *stubActivitySvc) ListForUser(_ context.Context, _ string, _, _ int) (*activitysvc.Page, error) {
	return s.page, s.err
}

func (s *stubActivitySvc) Stats(_ context.Context) (*activityrepo.Stats, error) {
	return s.stats, s.err
}

type stubAdminSvc struct {
	dash *statsrepo.Dashboard
	err  error
}

func (s *stubAdminSvc) Dashboard(_ context.Context) (*statsrepo.Dashboard, error) {
	return s.dash, s.err
}

var testTokens = auth.NewManager("router-test-secret", time.Hour)

func testDeps() Deps {
	return Deps{
		Users:      &stubUserSvc{},
		Carts:      &stubCartSvc{},
		Orders:     &stubOrderSvc{},
		Products:   &stubProductSvc{},
		Addresses:  &stubAddressSvc{},
		Drivers:    &stubDriverSvc{},
		Activities: &stubActivitySvc{},
		Admin:      &stubAdminSvc{},
		Tokens:     testTokens,
	}
}

func bearerFor(t *testing.T, user domain.User) string {
	t.Helper()
	token, err := testTokens.Issue(user)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return "Bearer " + token
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body, bearer string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v body=%s", err, rec.Body.String())
	}
	return env
}

func TestRegisterCreated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	deps := testDeps()
	deps.Users = &stubUserSvc{user: &domain.User{ID: "user-1", Email: "a@b.com"}, token: "signed"}
	router := buildRouter(logDiscard(), nil, deps)

	rec := doJSON(t, router, http.MethodPost, "/api/auth/register",
		`{"email":"a@b.com","password":"long-enough","fullName":"A B"}`, "")

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	if !env.Success {
		t.Fatalf("expected success envelope, got %+v", env)
	}
}

func TestRegisterDuplicateEmailMapsTo400(t *testing.T) {
	gin.SetMode(gin.TestMode)
	deps := testDeps()
	deps.Users = &stubUserSvc{err: domain.ErrAlreadyExists}
	router := buildRouter(logDiscard(), nil, deps)

	rec := doJSON(t, router, http.MethodPost, "/api/auth/register",
		`{"email":"a@b.com","password":"long-enough","fullName":"A B"}`, "")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if decodeEnvelope(t, rec).Success {
		t.Fatal("expected failure envelope")
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	gin.SetMode(gin.TestMode)
	deps := testDeps()
	deps.Users = &stubUserSvc{err: usersvc.ErrInvalidCredentials}
	router := buildRouter(logDiscard(), nil, deps)

	rec := doJSON(t, router, http.MethodPost, "/api/auth/login",
		`{"email":"a@b.com","password":"nope-nope"}`, "")

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestCartRequiresAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := buildRouter(logDiscard(), nil, testDeps())

	rec := doJSON(t, router, http.MethodGet, "/api/cart", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/cart", "", "Bearer not-a-token")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad token, got %d", rec.Code)
	}
}

func TestAddCartItemCreated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	deps := testDeps()
	deps.Carts = &stubCartSvc{cart: &domain.Cart{ID: "cart-1", Items: []domain.CartItem{{ProductID: "p1", Quantity: 1}}}}
	router := buildRouter(logDiscard(), nil, deps)
	bearer := bearerFor(t, domain.User{ID: "user-1", Role: domain.RoleUser})

	rec := doJSON(t, router, http.MethodPost, "/api/cart", `{"productId":"p1","quantity":1}`, bearer)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestAddCartItemUnknownProduct(t *testing.T) {
	gin.SetMode(gin.TestMode)
	deps := testDeps()
	deps.Carts = &stubCartSvc{err: domain.ErrNotFound}
	router := buildRouter(logDiscard(), nil, deps)
	bearer := bearerFor(t, domain.User{ID: "user-1", Role: domain.RoleUser})

	rec := doJSON(t, router, http.MethodPost, "/api/cart", `{"productId":"missing","quantity":1}`, bearer)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCancelOrderRequiresReason(t *testing.T) {
	gin.SetMode(gin.TestMode)
	deps := testDeps()
	deps.Orders = &stubOrderSvc{order: &domain.Order{ID: "order-1", UserID: "user-1"}}
	router := buildRouter(logDiscard(), nil, deps)
	bearer := bearerFor(t, domain.User{ID: "user-1", Role: domain.RoleUser})

	rec := doJSON(t, router, http.MethodPost, "/api/orders/order-1/cancel", `{"reason":"  "}`, bearer)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank reason, got %d", rec.Code)
	}
}

func TestCancelTerminalOrderMapsTo400(t *testing.T) {
	gin.SetMode(gin.TestMode)
	deps := testDeps()
	deps.Orders = &stubOrderSvc{order: &domain.Order{ID: "order-1"}, err: domain.ErrInvalidTransition}
	router := buildRouter(logDiscard(), nil, deps)
	bearer := bearerFor(t, domain.User{ID: "user-1", Role: domain.RoleUser})

	rec := doJSON(t, router, http.MethodPost, "/api/orders/order-1/cancel", `{"reason":"too late"}`, bearer)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTrackForeignOrderHidden(t *testing.T) {
	gin.SetMode(gin.TestMode)
	deps := testDeps()
	deps.Orders = &stubOrderSvc{getErr: domain.ErrNotFound}
	router := buildRouter(logDiscard(), nil, deps)
	bearer := bearerFor(t, domain.User{ID: "intruder", Role: domain.RoleUser})

	rec := doJSON(t, router, http.MethodGet, "/api/orders/order-1/track", "", bearer)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestStatusUpdateAdminOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)
	deps := testDeps()
	deps.Orders = &stubOrderSvc{order: &domain.Order{ID: "order-1", Status: domain.StatusConfirmed}}
	router := buildRouter(logDiscard(), nil, deps)

	userBearer := bearerFor(t, domain.User{ID: "user-1", Role: domain.RoleUser})
	rec := doJSON(t, router, http.MethodPatch, "/api/orders/order-1/status", `{"status":"confirmed"}`, userBearer)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", rec.Code)
	}

	adminBearer := bearerFor(t, domain.User{ID: "admin-1", Role: domain.RoleAdmin})
	rec = doJSON(t, router, http.MethodPatch, "/api/orders/order-1/status", `{"status":"confirmed"}`, adminBearer)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestErrorEnvelopeHidesInternals(t *testing.T) {
	gin.SetMode(gin.TestMode)
	deps := testDeps()
	deps.Products = &stubProductSvc{err: errors.New("pq: connection refused on 10.1.2.3")}
	router := buildRouter(logDiscard(), nil, deps)

	rec := doJSON(t, router, http.MethodGet, "/api/products/p1", "", "")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Success || strings.Contains(env.Message, "10.1.2.3") {
		t.Fatalf("expected generic failure message, got %+v", env)
	}
}

func TestPublicProductListing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	deps := testDeps()
	deps.Products = &stubProductSvc{page: &productsvc.Page{Total: 0, Page: 1, Limit: 20}}
	router := buildRouter(logDiscard(), nil, deps)

	rec := doJSON(t, router, http.MethodGet, "/api/products?category=shoes&minPrice=10", "", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !decodeEnvelope(t, rec).Success {
		t.Fatal("expected success envelope")
	}
}

func TestActivityStatsAdminOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)
	deps := testDeps()
	deps.Activities = &stubActivitySvc{stats: &activityrepo.Stats{
		TotalActivities: 3,
		ByAction:        map[string]int{"LOGIN": 2, "REGISTER": 1},
	}}
	router := buildRouter(logDiscard(), nil, deps)

	userBearer := bearerFor(t, domain.User{ID: "user-1", Role: domain.RoleUser})
	rec := doJSON(t, router, http.MethodGet, "/api/admin/activities/stats", "", userBearer)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", rec.Code)
	}

	adminBearer := bearerFor(t, domain.User{ID: "admin-1", Role: domain.RoleAdmin})
	rec = doJSON(t, router, http.MethodGet, "/api/admin/activities/stats", "", adminBearer)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !decodeEnvelope(t, rec).Success {
		t.Fatal("expected success envelope")
	}
}

func TestHealthEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := buildRouter(logDiscard(), nil, testDeps())

	rec := doJSON(t, router, http.MethodGet, "/healthz", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
