package invoice

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"kol-marketplace/internal/domain"
	"kol-marketplace/internal/invoice"
	cartsvc "kol-marketplace/internal/service/cart"
)

type Service struct {
	repo      invoiceRepo
	checkouts checkoutGetter
	carts     cartGetter
	users     userGetter
	renderer  renderer
	store     uploader
	logger    *log.Logger
}

type invoiceRepo interface {
	Create(ctx context.Context, in domain.Invoice) (*domain.Invoice, error)
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)
	List(ctx context.Context, params domain.ListParams) ([]domain.Invoice, int, error)
	SetPDFURL(ctx context.Context, id, url string) error
}

type checkoutGetter interface {
	Get(ctx context.Context, id string) (*domain.Checkout, error)
}

type cartGetter interface {
	Get(ctx context.Context, id string, coupon *cartsvc.CouponRef) (*cartsvc.PricedCart, error)
}

type userGetter interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

type renderer interface {
	RenderPDF(ctx context.Context, data invoice.Data) ([]byte, error)
}

type uploader interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

func New(repo invoiceRepo, checkouts checkoutGetter, carts cartGetter, users userGetter, r renderer, store uploader, logger *log.Logger) *Service {
	return &Service{repo: repo, checkouts: checkouts, carts: carts, users: users, renderer: r, store: store, logger: logger}
}

// Create generates an invoice for a completed checkout. The row is written
// first, then the PDF is rendered and uploaded; a rendering failure leaves
// the invoice without a document rather than losing it.
func (s *Service) Create(ctx context.Context, checkoutID string) (*domain.Invoice, error) {
	if checkoutID == "" {
		return nil, errors.New("checkoutId is required")
	}

	co, err := s.checkouts.Get(ctx, checkoutID)
	if err != nil {
		return nil, err
	}

	number := fmt.Sprintf("INV-%d-%s", time.Now().Year(), uuid.NewString()[:8])
	inv, err := s.repo.Create(ctx, domain.Invoice{
		CheckoutID: co.ID,
		Number:     number,
		Amount:     co.Total,
	})
	if err != nil {
		return nil, err
	}

	data, err := s.buildData(ctx, co, number)
	if err != nil {
		return nil, err
	}
	pdf, err := s.renderer.RenderPDF(ctx, *data)
	if err != nil {
		s.logger.Printf("invoice %s: pdf render failed: %v", inv.ID, err)
		return inv, nil
	}

	key := fmt.Sprintf("invoices/%s.pdf", inv.ID)
	url, err := s.store.Upload(ctx, key, pdf, "application/pdf")
	if err != nil {
		s.logger.Printf("invoice %s: upload failed: %v", inv.ID, err)
		return inv, nil
	}
	if err := s.repo.SetPDFURL(ctx, inv.ID, url); err != nil {
		return nil, err
	}
	inv.PDFURL = url
	return inv, nil
}

func (s *Service) buildData(ctx context.Context, co *domain.Checkout, number string) (*invoice.Data, error) {
	cart, err := s.carts.Get(ctx, co.CartID, nil)
	if err != nil {
		return nil, err
	}

	var customer string
	if u, err := s.users.GetByID(ctx, co.UserID); err == nil {
		customer = u.FullName
	}

	lines := make([]invoice.Line, 0, len(cart.PackageItems)+len(cart.InfluencerItems))
	for _, it := range cart.PackageItems {
		lines = append(lines, invoice.Line{Description: it.Package.Header, Quantity: it.Quantity, Amount: it.Package.Cost})
	}
	for _, it := range cart.InfluencerItems {
		lines = append(lines, invoice.Line{Description: it.Influencer.Name, Quantity: it.Quantity, Amount: it.Influencer.Price})
	}

	return &invoice.Data{
		Number:         number,
		IssuedAt:       time.Now(),
		CustomerName:   customer,
		Lines:          lines,
		Subtotal:       co.Subtotal,
		ManagementFee:  co.ManagementFee,
		CouponDiscount: co.CouponDiscount,
		Total:          co.Total,
	}, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Invoice, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, params domain.ListParams) ([]domain.Invoice, int, error) {
	return s.repo.List(ctx, params)
}
