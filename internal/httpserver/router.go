package httpserver

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"wifiric-backend/internal/domain"
	contactsvc "wifiric-backend/internal/service/contact"
	"wifiric-backend/internal/service/notify"
	ordersvc "wifiric-backend/internal/service/order"
	reviewsvc "wifiric-backend/internal/service/review"
	sessionsvc "wifiric-backend/internal/service/session"
)

// SessionValidator resolves bearer tokens to identities.
type SessionValidator interface {
	Validate(ctx context.Context, token string) (*sessionsvc.Identity, error)
}

// OrderService is the order operations surface the handlers need.
type OrderService interface {
	Available(ctx context.Context, ref string) (bool, error)
	Create(ctx context.Context, in ordersvc.CreateInput) (*domain.Order, error)
	GetByRef(ctx context.Context, ref string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	SetStatus(ctx context.Context, ref string, status domain.OrderStatus) error
}

// ContactService covers contact message intake, owner self-service and
// admin management.
type ContactService interface {
	Create(ctx context.Context, caller notify.Caller, in contactsvc.CreateInput) (*domain.ContactMessage, error)
	List(ctx context.Context, page, perPage int) (*contactsvc.Page, error)
	ListByUser(ctx context.Context, userID string) ([]domain.ContactMessage, error)
	Delete(ctx context.Context, id string) error
	DeleteOwn(ctx context.Context, userID, id string) error
}

// ReviewService covers review submission and listing.
type ReviewService interface {
	Create(ctx context.Context, userID string, in reviewsvc.CreateInput) (*domain.Review, error)
	List(ctx context.Context, limit, offset int) ([]domain.Review, error)
}

// NotificationService posts Discord notifications.
type NotificationService interface {
	NotifyOrder(ctx context.Context, caller notify.Caller, req notify.OrderRequest) (*notify.Result, error)
	NotifyContact(ctx context.Context, caller notify.Caller, req notify.ContactRequest) (*notify.Result, error)
	NotifyDeletion(ctx context.Context, req notify.DeletionRequest) (*notify.Result, error)
}

// Deps carries the services the router depends on.
type Deps struct {
	Sessions SessionValidator
	Orders   OrderService
	Contacts ContactService
	Reviews  ReviewService
	Notify   NotificationService
	// InviteURL is the public chat invite exposed to clients.
	InviteURL string
}

func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithWriter(logger.Writer()))
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Authorization", "Content-Type"},
		MaxAge:          12 * time.Hour,
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	h := &handlers{logger: logger, deps: deps}

	router.GET("/config", h.clientConfig)

	router.GET("/orders/availability/:ref", h.orderAvailability)
	router.GET("/reviews", h.listReviews)
	router.POST("/contact", optionalAuth(deps.Sessions), h.createContact)

	authed := router.Group("", authRequired(deps.Sessions))
	{
		authed.POST("/orders", h.createOrder)
		authed.GET("/orders", h.listOrders)
		authed.GET("/orders/:ref", h.getOrder)
		authed.GET("/contact-messages", h.listOwnContactMessages)
		authed.DELETE("/contact-messages/:id", h.deleteOwnContactMessage)
		authed.POST("/reviews", h.createReview)
		authed.POST("/notifications/order", h.notifyOrder)
		authed.POST("/notifications/contact", h.notifyContact)
	}

	admin := router.Group("", authRequired(deps.Sessions), adminRequired())
	{
		admin.PATCH("/orders/:ref/status", h.setOrderStatus)
		admin.GET("/admin/contact-messages", h.listContactMessages)
		admin.DELETE("/admin/contact-messages/:id", h.deleteContactMessage)
		admin.POST("/notifications/deletion", h.notifyDeletion)
	}

	return router
}

type handlers struct {
	logger *log.Logger
	deps   Deps
}

// clientConfig exposes the non-secret settings clients need.
func (h *handlers) clientConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"discordInviteUrl": h.deps.InviteURL})
}
