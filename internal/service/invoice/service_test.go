package invoice

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"kol-marketplace/internal/domain"
	"kol-marketplace/internal/invoice"
	cartsvc "kol-marketplace/internal/service/cart"
)

type stubRepo struct {
	created *domain.Invoice
	pdfURL  string
}

func (s *stubRepo) Create(_ context.Context, in domain.Invoice) (*domain.Invoice, error) {
	in.ID = "inv-1"
	s.created = &in
	return &in, nil
}

func (s *stubRepo) GetByID(_ context.Context, _ string) (*domain.Invoice, error) {
	return s.created, nil
}

func (s *stubRepo) List(_ context.Context, _ domain.ListParams) ([]domain.Invoice, int, error) {
	return nil, 0, nil
}

func (s *stubRepo) SetPDFURL(_ context.Context, _, url string) error {
	s.pdfURL = url
	return nil
}

type stubCheckouts struct {
	co  *domain.Checkout
	err error
}

func (s *stubCheckouts) Get(_ context.Context, _ string) (*domain.Checkout, error) {
	return s.co, s.err
}

type stubCarts struct{ cart *cartsvc.PricedCart }

func (s *stubCarts) Get(_ context.Context, _ string, _ *cartsvc.CouponRef) (*cartsvc.PricedCart, error) {
	return s.cart, nil
}

type stubUsers struct{}

func (stubUsers) GetByID(_ context.Context, _ string) (*domain.User, error) {
	return &domain.User{ID: "u1", FullName: "Acme Media", Status: domain.UserStatusActive}, nil
}

type stubRenderer struct {
	pdf  []byte
	err  error
	data invoice.Data
}

func (s *stubRenderer) RenderPDF(_ context.Context, data invoice.Data) ([]byte, error) {
	s.data = data
	return s.pdf, s.err
}

type stubStore struct {
	key string
	err error
}

func (s *stubStore) Upload(_ context.Context, key string, _ []byte, _ string) (string, error) {
	s.key = key
	if s.err != nil {
		return "", s.err
	}
	return "http://minio/invoices/" + key, nil
}

func discard() *log.Logger { return log.New(io.Discard, "", 0) }

func checkoutFixture() *domain.Checkout {
	return &domain.Checkout{ID: "chk-1", CartID: "cart-1", UserID: "u1", Subtotal: 30000, ManagementFee: 3562.5, Total: 33562.5}
}

func cartFixture() *cartsvc.PricedCart {
	return &cartsvc.PricedCart{Cart: domain.Cart{
		ID: "cart-1",
		PackageItems: []domain.PackageCartItem{
			{Quantity: 1, Package: domain.PackageHeader{Header: "Sponsored post bundle", Cost: 30000}},
		},
	}}
}

func TestCreateRendersAndUploads(t *testing.T) {
	repo := &stubRepo{}
	rend := &stubRenderer{pdf: []byte("%PDF-1.4")}
	store := &stubStore{}
	svc := New(repo, &stubCheckouts{co: checkoutFixture()}, &stubCarts{cart: cartFixture()}, stubUsers{}, rend, store, discard())

	inv, err := svc.Create(context.Background(), "chk-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.CheckoutID != "chk-1" || inv.Amount != 33562.5 {
		t.Fatalf("unexpected invoice: %+v", inv)
	}
	if !strings.HasPrefix(inv.Number, "INV-") {
		t.Fatalf("unexpected number %q", inv.Number)
	}
	if store.key != "invoices/inv-1.pdf" {
		t.Fatalf("unexpected object key %q", store.key)
	}
	if repo.pdfURL == "" || inv.PDFURL != repo.pdfURL {
		t.Fatalf("pdf url not stored: %q vs %q", inv.PDFURL, repo.pdfURL)
	}
	if len(rend.data.Lines) != 1 || rend.data.Lines[0].Description != "Sponsored post bundle" {
		t.Fatalf("unexpected render data: %+v", rend.data.Lines)
	}
	if rend.data.CustomerName != "Acme Media" {
		t.Fatalf("customer name missing")
	}
}

func TestCreateSurvivesRenderFailure(t *testing.T) {
	repo := &stubRepo{}
	rend := &stubRenderer{err: errors.New("no chrome")}
	svc := New(repo, &stubCheckouts{co: checkoutFixture()}, &stubCarts{cart: cartFixture()}, stubUsers{}, rend, &stubStore{}, discard())

	inv, err := svc.Create(context.Background(), "chk-1")
	if err != nil {
		t.Fatalf("render failure should not fail creation: %v", err)
	}
	if inv.PDFURL != "" || repo.pdfURL != "" {
		t.Fatalf("no pdf url expected")
	}
}

func TestCreateUnknownCheckout(t *testing.T) {
	svc := New(&stubRepo{}, &stubCheckouts{err: domain.ErrNotFound}, &stubCarts{}, stubUsers{}, &stubRenderer{}, &stubStore{}, discard())
	if _, err := svc.Create(context.Background(), "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := New(&stubRepo{}, &stubCheckouts{}, &stubCarts{}, stubUsers{}, &stubRenderer{}, &stubStore{}, discard())
	if _, err := svc.Create(context.Background(), ""); err == nil {
		t.Fatalf("expected validation error")
	}
}
