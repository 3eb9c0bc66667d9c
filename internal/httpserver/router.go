package httpserver

import (
	"context"
	"io"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"kol-marketplace/internal/domain"
	cartsvc "kol-marketplace/internal/service/cart"
	checkoutsvc "kol-marketplace/internal/service/checkout"
)

// Deps collects the services the handlers call. Interfaces are declared
// here, on the consumer side, so tests can stub any of them.
type Deps struct {
	Influencers InfluencerService
	Packages    PackageService
	Carts       CartService
	Coupons     CouponService
	Onboarding  OnboardingService
	Checkouts   CheckoutService
	Invoices    InvoiceService

	// Import runs a CSV catalog import from an uploaded file.
	Import func(ctx context.Context, r io.Reader) (int, error)
}

type InfluencerService interface {
	Create(ctx context.Context, in domain.Influencer) (*domain.Influencer, error)
	Get(ctx context.Context, id string) (*domain.Influencer, error)
	List(ctx context.Context, params domain.ListParams) ([]domain.Influencer, int, error)
	Update(ctx context.Context, in domain.Influencer) (*domain.Influencer, error)
	Delete(ctx context.Context, id string) error
}

type PackageService interface {
	CreateHeader(ctx context.Context, in domain.PackageHeader) (*domain.PackageHeader, error)
	GetHeader(ctx context.Context, id string) (*domain.PackageHeader, error)
	ListHeaders(ctx context.Context, params domain.ListParams) ([]domain.PackageHeader, int, error)
	DeleteHeader(ctx context.Context, id string) error
	CreateItem(ctx context.Context, in domain.PackageItem) (*domain.PackageItem, error)
	GetItem(ctx context.Context, id string) (*domain.PackageItem, error)
	DeleteItem(ctx context.Context, id string) error
}

type CartService interface {
	Create(ctx context.Context, userID *string) (*domain.Cart, error)
	Get(ctx context.Context, id string, coupon *cartsvc.CouponRef) (*cartsvc.PricedCart, error)
	List(ctx context.Context, params domain.ListParams, coupon *cartsvc.CouponRef) ([]cartsvc.PricedCart, int, error)
	Delete(ctx context.Context, id string) error
	AddPackageItem(ctx context.Context, cartID, headerID string, quantity int) (*cartsvc.PricedCart, error)
	AddInfluencerItem(ctx context.Context, cartID, influencerID string, quantity int) (*cartsvc.PricedCart, error)
	RemovePackageItem(ctx context.Context, cartID, itemID string) (*cartsvc.PricedCart, error)
	RemoveInfluencerItem(ctx context.Context, cartID, itemID string) (*cartsvc.PricedCart, error)
}

type CouponService interface {
	Create(ctx context.Context, in domain.CouponCode) (*domain.CouponCode, error)
	Get(ctx context.Context, id string) (*domain.CouponCode, error)
	List(ctx context.Context, params domain.ListParams) ([]domain.CouponCode, int, error)
	Delete(ctx context.Context, id string) error
	Check(ctx context.Context, userID, couponID string, orderTotal float64) (*domain.CouponCode, error)
}

type OnboardingService interface {
	Questions(ctx context.Context) ([]domain.Question, error)
	ProcessSelections(ctx context.Context, userID string, selections []domain.Selection) error
}

type CheckoutService interface {
	Create(ctx context.Context, cartID, userID string, couponID *string) (*checkoutsvc.Result, error)
	Get(ctx context.Context, id string) (*domain.Checkout, error)
}

type InvoiceService interface {
	Create(ctx context.Context, checkoutID string) (*domain.Invoice, error)
	Get(ctx context.Context, id string) (*domain.Invoice, error)
	List(ctx context.Context, params domain.ListParams) ([]domain.Invoice, int, error)
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	h := handlers{deps: deps, logger: logger}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health/metrics", metricsHandler)

		v1.POST("/influencers", h.createInfluencer)
		v1.GET("/influencers", h.listInfluencers)
		v1.GET("/influencers/:id", h.getInfluencer)
		v1.PUT("/influencers/:id", h.updateInfluencer)
		v1.DELETE("/influencers/:id", h.deleteInfluencer)

		v1.POST("/packages", h.createPackage)
		v1.GET("/packages", h.listPackages)
		v1.GET("/packages/:id", h.getPackage)
		v1.DELETE("/packages/:id", h.deletePackage)
		v1.POST("/packages/import", h.importPackages)

		v1.POST("/package-items", h.createPackageItem)
		v1.GET("/package-items/:id", h.getPackageItem)
		v1.DELETE("/package-items/:id", h.deletePackageItem)

		v1.POST("/carts", h.createCart)
		v1.GET("/carts", h.listCarts)
		v1.GET("/carts/:id", h.getCart)
		v1.DELETE("/carts/:id", h.deleteCart)
		v1.POST("/carts/:id/package-items", h.addCartPackageItem)
		v1.POST("/carts/:id/influencer-items", h.addCartInfluencerItem)
		v1.DELETE("/carts/:id/package-items/:itemId", h.removeCartPackageItem)
		v1.DELETE("/carts/:id/influencer-items/:itemId", h.removeCartInfluencerItem)

		v1.POST("/coupons", h.createCoupon)
		v1.GET("/coupons", h.listCoupons)
		v1.GET("/coupons/:id", h.getCoupon)
		v1.DELETE("/coupons/:id", h.deleteCoupon)
		v1.POST("/coupons/check", h.checkCoupon)

		v1.GET("/onboarding/questions", h.listQuestions)
		v1.POST("/onboarding/answers", h.submitAnswers)

		v1.POST("/checkout", h.createCheckout)
		v1.GET("/checkout/:id", h.getCheckout)

		v1.POST("/invoices", h.createInvoice)
		v1.GET("/invoices", h.listInvoices)
		v1.GET("/invoices/:id", h.getInvoice)
	}

	return router
}

type handlers struct {
	deps   Deps
	logger *log.Logger
}
