package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/pradeepit93/srienippagam-menu/pkg/cart"
	"github.com/pradeepit93/srienippagam-menu/pkg/catalog"
	"github.com/pradeepit93/srienippagam-menu/pkg/events"
	"github.com/pradeepit93/srienippagam-menu/pkg/global"
	"github.com/pradeepit93/srienippagam-menu/pkg/images"
	"github.com/pradeepit93/srienippagam-menu/pkg/metrics"
)

// Server holds the HTTP engine and everything the handlers need.
type Server struct {
	Router *gin.Engine

	Config  *global.Config
	Catalog *catalog.Service
	Carts   cart.Store
	Images  *images.Pool
	Events  events.Publisher
	Metrics *metrics.Registry
	// Handoff, when set, receives every validated order exactly once before
	// the ordered lines leave the cart. The deep link is always returned to
	// the client.
	Handoff cart.Handoff
}

func NewServer(cfg *global.Config, catalogService *catalog.Service, carts cart.Store, pool *images.Pool, publisher events.Publisher, registry *metrics.Registry) *Server {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if registry == nil {
		registry = metrics.NewRegistry()
	}
	return &Server{
		Config:  cfg,
		Catalog: catalogService,
		Carts:   carts,
		Images:  pool,
		Events:  publisher,
		Metrics: registry,
	}
}

func (s *Server) InitEngine() {
	switch {
	case s.Config.IsProduction():
		gin.SetMode(gin.ReleaseMode)
	case s.Config.Env == gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	s.Router = gin.New()
	s.Router.Use(RequestLogger(), gin.Recovery())

	s.Router.Use(cors.New(cors.Config{
		AllowOrigins:     s.Config.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}

func (s *Server) InitializeRoutes() {
	s.Router.GET("/metrics", gin.WrapH(s.Metrics.Handler()))

	api := s.Router.Group("/api")
	{
		api.GET("/health", s.HealthCheck)

		categories := api.Group("/categories")
		{
			categories.GET("", s.GetCategories)
			categories.GET("/:category/subcategories", s.GetSubCategories)
		}

		products := api.Group("/products")
		{
			products.GET("", s.GetProducts)
			products.GET("/:id", s.GetProduct)
			products.GET("/:id/image", s.GetProductImage)
		}

		api.POST("/catalog/reload", s.ReloadCatalog)

		carts := api.Group("/cart/:sessionId")
		carts.Use(SessionMiddleware())
		{
			carts.GET("", s.GetCart)
			carts.DELETE("", s.ClearCart)
			carts.POST("/items", s.AddToCart)
			carts.PATCH("/items/:lineId", s.UpdateCartLine)
			carts.DELETE("/items/:lineId", s.RemoveFromCart)
			carts.POST("/checkout", s.Checkout)
		}
	}
}

// Run starts serving on the configured port.
func (s *Server) Run() error {
	return s.Router.Run(":" + s.Config.Port)
}
