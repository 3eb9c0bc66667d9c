package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"kol-marketplace/internal/domain"
	cartsvc "kol-marketplace/internal/service/cart"
	checkoutsvc "kol-marketplace/internal/service/checkout"
)

func testLogger() *log.Logger { return log.New(io.Discard, "", 0) }

type stubInfluencers struct {
	influencer *domain.Influencer
	err        error
	list       []domain.Influencer
	total      int
}

func (s *stubInfluencers) Create(_ context.Context, in domain.Influencer) (*domain.Influencer, error) {
	if s.err != nil {
		return nil, s.err
	}
	in.ID = "inf-1"
	return &in, nil
}

func (s *stubInfluencers) Get(_ context.Context, _ string) (*domain.Influencer, error) {
	return s.influencer, s.err
}

func (s *stubInfluencers) List(_ context.Context, _ domain.ListParams) ([]domain.Influencer, int, error) {
	return s.list, s.total, s.err
}

func (s *stubInfluencers) Update(_ context.Context, in domain.Influencer) (*domain.Influencer, error) {
	return &in, s.err
}

func (s *stubInfluencers) Delete(_ context.Context, _ string) error { return s.err }

type stubCarts struct {
	cart   *cartsvc.PricedCart
	list   []cartsvc.PricedCart
	total  int
	err    error
	gotRef *cartsvc.CouponRef
}

func (s *stubCarts) Create(_ context.Context, userID *string) (*domain.Cart, error) {
	return &domain.Cart{ID: "cart-1", UserID: userID}, s.err
}

func (s *stubCarts) Get(_ context.Context, _ string, ref *cartsvc.CouponRef) (*cartsvc.PricedCart, error) {
	s.gotRef = ref
	return s.cart, s.err
}

func (s *stubCarts) List(_ context.Context, _ domain.ListParams, ref *cartsvc.CouponRef) ([]cartsvc.PricedCart, int, error) {
	s.gotRef = ref
	return s.list, s.total, s.err
}

func (s *stubCarts) Delete(_ context.Context, _ string) error { return s.err }

func (s *stubCarts) AddPackageItem(_ context.Context, _, _ string, _ int) (*cartsvc.PricedCart, error) {
	return s.cart, s.err
}

func (s *stubCarts) AddInfluencerItem(_ context.Context, _, _ string, _ int) (*cartsvc.PricedCart, error) {
	return s.cart, s.err
}

func (s *stubCarts) RemovePackageItem(_ context.Context, _, _ string) (*cartsvc.PricedCart, error) {
	return s.cart, s.err
}

func (s *stubCarts) RemoveInfluencerItem(_ context.Context, _, _ string) (*cartsvc.PricedCart, error) {
	return s.cart, s.err
}

type stubCoupons struct {
	coupon *domain.CouponCode
	err    error
}

func (s *stubCoupons) Create(_ context.Context, in domain.CouponCode) (*domain.CouponCode, error) {
	in.ID = "coup-1"
	return &in, s.err
}

func (s *stubCoupons) Get(_ context.Context, _ string) (*domain.CouponCode, error) {
	return s.coupon, s.err
}

func (s *stubCoupons) List(_ context.Context, _ domain.ListParams) ([]domain.CouponCode, int, error) {
	return nil, 0, s.err
}

func (s *stubCoupons) Delete(_ context.Context, _ string) error { return s.err }

func (s *stubCoupons) Check(_ context.Context, _, _ string, _ float64) (*domain.CouponCode, error) {
	return s.coupon, s.err
}

func newTestRouter(deps Deps) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return buildRouter(testLogger(), nil, deps)
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(Deps{})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadyzWithoutDB(t *testing.T) {
	router := newTestRouter(Deps{})
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestMetrics(t *testing.T) {
	router := newTestRouter(Deps{})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	for _, key := range []string{"goroutines", "memory", "pid", "uptimeSeconds"} {
		if _, ok := body[key]; !ok {
			t.Errorf("metrics missing %q", key)
		}
	}
}

func TestGetInfluencerRenamesFields(t *testing.T) {
	deps := Deps{Influencers: &stubInfluencers{influencer: &domain.Influencer{
		ID: "inf-1", Name: "Tech Tina", Platform: "youtube", Subscribers: 120000, Price: 3000,
	}}}
	router := newTestRouter(deps)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/influencers/inf-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"influencer":"Tech Tina"`) || !strings.Contains(body, `"followers":120000`) {
		t.Fatalf("expected renamed fields, got %s", body)
	}
	if strings.Contains(body, `"subscribers"`) {
		t.Fatalf("persistence field name leaked: %s", body)
	}
}

func TestGetInfluencerNotFound(t *testing.T) {
	deps := Deps{Influencers: &stubInfluencers{err: domain.ErrNotFound}}
	router := newTestRouter(deps)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/influencers/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestListInfluencersEnvelope(t *testing.T) {
	deps := Deps{Influencers: &stubInfluencers{
		list:  []domain.Influencer{{ID: "inf-1", Name: "A"}, {ID: "inf-2", Name: "B"}},
		total: 12,
	}}
	router := newTestRouter(deps)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/influencers?page=2&limit=5", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Data       []json.RawMessage `json:"data"`
		Pagination pagination        `json:"pagination"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(body.Data) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(body.Data))
	}
	want := pagination{Page: 2, Limit: 5, Total: 12, TotalPages: 3}
	if body.Pagination != want {
		t.Fatalf("unexpected pagination: %+v", body.Pagination)
	}
}

func TestCreateInfluencerValidation(t *testing.T) {
	router := newTestRouter(Deps{Influencers: &stubInfluencers{}})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/influencers", strings.NewReader(`{"platform":"tiktok"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetCartPassesCouponRef(t *testing.T) {
	carts := &stubCarts{cart: &cartsvc.PricedCart{Cart: domain.Cart{ID: "cart-1"}}}
	router := newTestRouter(Deps{Carts: carts})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/carts/cart-1?couponId=coup-1&userId=u1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if carts.gotRef == nil || carts.gotRef.CouponID != "coup-1" || carts.gotRef.UserID != "u1" {
		t.Fatalf("coupon ref not forwarded: %+v", carts.gotRef)
	}
}

func TestGetCartShapesInfluencerItems(t *testing.T) {
	carts := &stubCarts{cart: &cartsvc.PricedCart{Cart: domain.Cart{
		ID: "cart-1",
		InfluencerItems: []domain.InfluencerCartItem{{
			ID: "ci-1", CartID: "cart-1", InfluencerID: "inf-1", Quantity: 1,
			Influencer: domain.Influencer{ID: "inf-1", Name: "Tech Tina", Subscribers: 120000},
		}},
	}}}
	router := newTestRouter(Deps{Carts: carts})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/carts/cart-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, `"influencer":"Tech Tina"`) || !strings.Contains(body, `"followers":120000`) {
		t.Fatalf("expected shaped influencer item, got %s", body)
	}
}

func TestCheckCouponRuleErrorsAre400(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"used", domain.ErrCouponUsed, "You have already used this coupon code"},
		{"expired", domain.ErrCouponExpired, "This coupon code has expired"},
		{"invalid", domain.ErrCouponInvalid, "Invalid or inactive coupon code"},
		{"minOrder", &domain.MinOrderValueError{Minimum: 500}, "Order total must be at least 500.00 to use this coupon"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(Deps{Coupons: &stubCoupons{err: tc.err}})

			req := httptest.NewRequest(http.MethodPost, "/api/v1/coupons/check",
				strings.NewReader(`{"userId":"u1","couponId":"coup-1","orderTotal":100}`))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tc.want) {
				t.Fatalf("expected message %q, got %s", tc.want, rec.Body.String())
			}
		})
	}
}

func TestInternalErrorsAreGeneric(t *testing.T) {
	deps := Deps{Influencers: &stubInfluencers{err: io.ErrUnexpectedEOF}}
	router := newTestRouter(deps)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/influencers/inf-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "unexpected EOF") {
		t.Fatalf("raw error leaked to client: %s", rec.Body.String())
	}
}

func TestImportPackagesUpload(t *testing.T) {
	var gotCSV string
	deps := Deps{Import: func(_ context.Context, r io.Reader) (int, error) {
		b, _ := io.ReadAll(r)
		gotCSV = string(b)
		return 3, nil
	}}
	router := newTestRouter(deps)

	body := &strings.Builder{}
	boundary := "testboundary"
	body.WriteString("--" + boundary + "\r\n")
	body.WriteString("Content-Disposition: form-data; name=\"file\"; filename=\"packages.csv\"\r\n")
	body.WriteString("Content-Type: text/csv\r\n\r\n")
	body.WriteString("Header,Cost\r\nTech bundle,30000\r\n")
	body.WriteString("\r\n--" + boundary + "--\r\n")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/packages/import", strings.NewReader(body.String()))
	req.Header.Set("Content-Type", "multipart/form-data; boundary="+boundary)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"imported":3`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if !strings.Contains(gotCSV, "Tech bundle") {
		t.Fatalf("uploaded file not forwarded: %q", gotCSV)
	}
}

var _ CheckoutService = (*stubCheckouts)(nil)

type stubCheckouts struct {
	res *checkoutsvc.Result
	err error
}

func (s *stubCheckouts) Create(_ context.Context, _, _ string, _ *string) (*checkoutsvc.Result, error) {
	return s.res, s.err
}

func (s *stubCheckouts) Get(_ context.Context, _ string) (*domain.Checkout, error) {
	if s.res == nil {
		return nil, domain.ErrNotFound
	}
	return &s.res.Checkout, s.err
}

func TestCreateCheckout(t *testing.T) {
	deps := Deps{Checkouts: &stubCheckouts{res: &checkoutsvc.Result{
		Checkout:     domain.Checkout{ID: "chk-1", Total: 39156.25},
		ClientSecret: "pi_secret",
	}}}
	router := newTestRouter(deps)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout",
		strings.NewReader(`{"cartId":"cart-1","userId":"u1"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "pi_secret") {
		t.Fatalf("client secret missing: %s", rec.Body.String())
	}
}
