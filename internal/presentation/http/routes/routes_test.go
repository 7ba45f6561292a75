package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iliri/iliri-api/internal/application/service"
	"github.com/iliri/iliri-api/internal/config"
	"github.com/iliri/iliri-api/internal/domain/repository"
	"github.com/iliri/iliri-api/internal/infrastructure/database"
	"github.com/iliri/iliri-api/internal/infrastructure/memory"
	infraRepo "github.com/iliri/iliri-api/internal/infrastructure/repository"
	"github.com/iliri/iliri-api/internal/presentation/http/handler"
	"github.com/iliri/iliri-api/pkg/printer"
	"github.com/iliri/iliri-api/pkg/utils"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	db, err := database.NewSQLiteDB(":memory:", false)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{
		App:       config.AppConfig{Name: "iliri-test", Env: "test"},
		Auth:      config.AuthConfig{Username: "admin", Password: "password123", Email: "user@example.com"},
		RateLimit: config.RateLimitConfig{Requests: 1000, Duration: 1},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"http://localhost:5173"},
			AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
		},
	}

	kv := infraRepo.NewKeyValueRepository(db)
	authService, err := service.NewAuthService(ctx, kv, utils.NewJWTManager("test-secret", time.Hour, "iliri-test"), cfg.Auth)
	if err != nil {
		t.Fatalf("auth service: %v", err)
	}

	store := memory.NewStore()
	dashboard := service.NewDashboardService(store, repository.AnalyticsOptions{})
	handlers := &Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Dashboard: handler.NewDashboardHandler(dashboard, service.NewPreferenceService(kv)),
		Article:   handler.NewArticleHandler(service.NewArticleService(store, dashboard)),
		Supplier:  handler.NewSupplierHandler(service.NewSupplierService(store, 10)),
		Client:    handler.NewClientHandler(service.NewClientService(store, 10)),
		Purchase:  handler.NewPurchaseHandler(service.NewPurchaseService(store, dashboard)),
		Sale:      handler.NewSaleHandler(service.NewSaleService(store, dashboard)),
		Receipt:   handler.NewReceiptHandler(service.NewReceiptService(store, printer.NewNullPrinter(), printer.TypeNone, "Iliri", 32)),
	}

	router := Setup(handlers, &Deps{
		TokenValidator:  authService,
		Cfg:             cfg,
		IdempotencyRepo: infraRepo.NewIdempotencyRepository(db),
	})
	return &testServer{t: t, router: router}
}

func (s *testServer) do(method, path string, body interface{}, headers ...string) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			s.t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			s.t.Fatalf("%s %s: decode response %q: %v", method, path, w.Body.String(), err)
		}
	}
	return w, env
}

func (s *testServer) mustDo(method, path string, body interface{}, wantStatus int, out interface{}) envelope {
	s.t.Helper()
	w, env := s.do(method, path, body)
	if w.Code != wantStatus {
		s.t.Fatalf("%s %s: status %d, want %d: %s", method, path, w.Code, wantStatus, w.Body.String())
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			s.t.Fatalf("%s %s: decode data: %v", method, path, err)
		}
	}
	return env
}

func (s *testServer) login() {
	s.t.Helper()
	var out struct {
		Token string `json:"token"`
	}
	s.mustDo(http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
		"name":     "admin",
		"password": "password123",
	}, http.StatusOK, &out)
	if out.Token == "" {
		s.t.Fatal("login returned no token")
	}
	s.token = out.Token
}

type idOnly struct {
	ID string `json:"id"`
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w, _ := s.do(http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc"},
		{"garbage token", "Bearer not-a-jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var w *httptest.ResponseRecorder
			if tt.header == "" {
				w, _ = s.do(http.MethodGet, "/api/v1/articles", nil)
			} else {
				w, _ = s.do(http.MethodGet, "/api/v1/articles", nil, "Authorization", tt.header)
			}
			if w.Code != http.StatusUnauthorized {
				t.Errorf("status %d, want 401", w.Code)
			}
		})
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	s := newTestServer(t)
	w, env := s.do(http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
		"name":     "admin",
		"password": "wrong-password",
	})
	if w.Code != http.StatusUnauthorized || env.Success {
		t.Fatalf("status %d success=%v, want 401", w.Code, env.Success)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	s := newTestServer(t)
	s.login()

	s.mustDo(http.MethodGet, "/api/v1/profile", nil, http.StatusOK, nil)
	s.mustDo(http.MethodPost, "/api/v1/auth/logout", nil, http.StatusOK, nil)

	w, _ := s.do(http.MethodGet, "/api/v1/profile", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("revoked token still accepted: %d", w.Code)
	}
}

func TestArticleValidationErrors(t *testing.T) {
	s := newTestServer(t)
	s.login()

	w, env := s.do(http.MethodPost, "/api/v1/articles", map[string]interface{}{
		"name":         "",
		"code1":        "",
		"cost":         -1,
		"currentStock": 5,
		"price1":       10,
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status %d, want 422: %s", w.Code, w.Body.String())
	}
	fields := map[string]bool{}
	for _, e := range env.Errors {
		fields[e.Field] = true
	}
	for _, f := range []string{"name", "code1", "cost"} {
		if !fields[f] {
			t.Errorf("missing field error for %s in %+v", f, env.Errors)
		}
	}
}

func TestSaleAndPaymentFlow(t *testing.T) {
	s := newTestServer(t)
	s.login()

	var supplier, client, article idOnly
	s.mustDo(http.MethodPost, "/api/v1/suppliers", map[string]interface{}{"name": "Acme"}, http.StatusCreated, &supplier)
	s.mustDo(http.MethodPost, "/api/v1/clients", map[string]interface{}{"name": "Ben"}, http.StatusCreated, &client)
	s.mustDo(http.MethodPost, "/api/v1/articles", map[string]interface{}{
		"name":         "Bolt",
		"code1":        "B-1",
		"cost":         2,
		"currentStock": 0,
		"price1":       5,
		"supplierId":   supplier.ID,
	}, http.StatusCreated, &article)

	s.mustDo(http.MethodPost, "/api/v1/purchases", map[string]interface{}{
		"supplierId": supplier.ID,
		"items": []map[string]interface{}{
			{"articleId": article.ID, "quantity": 10, "unitCost": 3},
		},
	}, http.StatusCreated, nil)

	var sale struct {
		ID     string `json:"id"`
		Number int    `json:"number"`
		Paid   bool   `json:"paid"`
	}
	s.mustDo(http.MethodPost, "/api/v1/sales", map[string]interface{}{
		"clientId": client.ID,
		"items": []map[string]interface{}{
			{"articleId": article.ID, "quantity": 4},
		},
	}, http.StatusCreated, &sale)
	if sale.Number != 1 || sale.Paid {
		t.Fatalf("unexpected sale %+v", sale)
	}

	var stocked struct {
		CurrentStock json.Number `json:"currentStock"`
		Cost         json.Number `json:"cost"`
	}
	s.mustDo(http.MethodGet, "/api/v1/articles/"+article.ID, nil, http.StatusOK, &stocked)
	if stocked.CurrentStock.String() != "6" || stocked.Cost.String() != "3" {
		t.Errorf("stock=%s cost=%s, want 6 and 3", stocked.CurrentStock, stocked.Cost)
	}

	// total is 4 x 5 = 20
	w, env := s.do(http.MethodPost, "/api/v1/sales/"+sale.ID+"/payments", map[string]interface{}{"amount": 25})
	if w.Code != http.StatusUnprocessableEntity || len(env.Errors) == 0 || env.Errors[0].Field != "amount" {
		t.Fatalf("overpayment: status %d errors %+v", w.Code, env.Errors)
	}

	s.mustDo(http.MethodPost, "/api/v1/sales/"+sale.ID+"/payments", map[string]interface{}{"amount": 8}, http.StatusCreated, nil)

	var settled struct {
		Paid bool `json:"paid"`
	}
	s.mustDo(http.MethodPost, "/api/v1/sales/"+sale.ID+"/settle", nil, http.StatusOK, &settled)
	if !settled.Paid {
		t.Error("sale not paid after settle")
	}

	var printed struct {
		Receipt struct {
			Kind  string      `json:"kind"`
			Total json.Number `json:"total"`
		} `json:"receipt"`
	}
	s.mustDo(http.MethodPost, "/api/v1/sales/"+sale.ID+"/print", nil, http.StatusOK, &printed)
	if printed.Receipt.Kind != "Sale" || printed.Receipt.Total.String() != "20" {
		t.Errorf("unexpected receipt %+v", printed.Receipt)
	}

	var payments []struct {
		Amount json.Number `json:"amount"`
	}
	s.mustDo(http.MethodGet, "/api/v1/sales/"+sale.ID+"/payments", nil, http.StatusOK, &payments)
	if len(payments) != 2 {
		t.Fatalf("got %d payments, want 2", len(payments))
	}

	var last struct {
		LastPrice json.Number `json:"lastPrice"`
	}
	s.mustDo(http.MethodGet, "/api/v1/prices/last?client_id="+client.ID+"&article_id="+article.ID, nil, http.StatusOK, &last)
	if last.LastPrice.String() != "5" {
		t.Errorf("last price %s, want 5", last.LastPrice)
	}

	var dash struct {
		Analytics struct {
			TotalSales   int         `json:"totalSales"`
			TotalRevenue json.Number `json:"totalRevenue"`
		} `json:"analytics"`
	}
	s.mustDo(http.MethodGet, "/api/v1/dashboard", nil, http.StatusOK, &dash)
	if dash.Analytics.TotalSales != 1 || dash.Analytics.TotalRevenue.String() != "20" {
		t.Errorf("analytics %+v, want 1 sale worth 20", dash.Analytics)
	}
}

func TestIdempotentSaleReplay(t *testing.T) {
	s := newTestServer(t)
	s.login()

	var client, article idOnly
	s.mustDo(http.MethodPost, "/api/v1/clients", map[string]interface{}{"name": "Ben"}, http.StatusCreated, &client)
	s.mustDo(http.MethodPost, "/api/v1/articles", map[string]interface{}{
		"name": "Nut", "code1": "N-1", "cost": 1, "currentStock": 10, "price1": 2,
	}, http.StatusCreated, &article)

	body := map[string]interface{}{
		"clientId": client.ID,
		"items":    []map[string]interface{}{{"articleId": article.ID, "quantity": 1}},
	}
	first, _ := s.do(http.MethodPost, "/api/v1/sales", body, "Idempotency-Key", "sale-1")
	second, _ := s.do(http.MethodPost, "/api/v1/sales", body, "Idempotency-Key", "sale-1")
	if first.Code != http.StatusCreated || second.Code != http.StatusCreated {
		t.Fatalf("status %d then %d", first.Code, second.Code)
	}
	if second.Header().Get("X-Idempotency-Replayed") != "true" {
		t.Error("second request was not replayed")
	}

	var listed struct {
		Items []idOnly `json:"items"`
	}
	s.mustDo(http.MethodGet, "/api/v1/sales", nil, http.StatusOK, &listed)
	if len(listed.Items) != 1 {
		t.Errorf("got %d sales, want 1", len(listed.Items))
	}
}

func TestArticleListPagination(t *testing.T) {
	s := newTestServer(t)
	s.login()

	for _, code := range []string{"A", "B", "C"} {
		s.mustDo(http.MethodPost, "/api/v1/articles", map[string]interface{}{
			"name": "Item " + code, "code1": code, "cost": 1, "currentStock": 1, "price1": 2,
		}, http.StatusCreated, nil)
	}

	var page struct {
		Items      []idOnly `json:"items"`
		Pagination struct {
			Total   int  `json:"total"`
			HasNext bool `json:"has_next"`
		} `json:"pagination"`
	}
	s.mustDo(http.MethodGet, "/api/v1/articles?per_page=2", nil, http.StatusOK, &page)
	if len(page.Items) != 2 || page.Pagination.Total != 3 || !page.Pagination.HasNext {
		t.Errorf("unexpected page %+v", page)
	}
}

func TestDashboardNotes(t *testing.T) {
	s := newTestServer(t)
	s.login()

	s.mustDo(http.MethodPut, "/api/v1/dashboard/notes", map[string]interface{}{"notes": "call Ben"}, http.StatusOK, nil)

	var out struct {
		Notes string `json:"notes"`
	}
	s.mustDo(http.MethodGet, "/api/v1/dashboard/notes", nil, http.StatusOK, &out)
	if out.Notes != "call Ben" {
		t.Errorf("notes %q", out.Notes)
	}
}
