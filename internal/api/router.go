package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/nekogravitycat/banquet-calendar/internal/auth"
	"github.com/nekogravitycat/banquet-calendar/internal/booking"
	bookingHttp "github.com/nekogravitycat/banquet-calendar/internal/booking/http"
	"github.com/nekogravitycat/banquet-calendar/internal/calendar"
	calendarHttp "github.com/nekogravitycat/banquet-calendar/internal/calendar/http"
)

// Config holds what the router needs to wire the HTTP surface.
type Config struct {
	IsProduction     bool
	ProdOrigins      string
	BookingService   booking.Service
	Engine           *calendar.Engine
	MobileBreakpoint int
	JWTManager       *auth.JWTManager
	Logger           *zap.Logger
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global Middleware:
	// - RequestLogger: structured access log with a request ID.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(RequestLogger(cfg.Logger), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = splitOrigins(cfg.ProdOrigins)
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:5173", // Vite dev server
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", requestIDHeader}
	corsConfig.ExposeHeaders = []string{requestIDHeader}
	r.Use(cors.New(corsConfig))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// authMiddleware: Validates the bearer token and stores the Session.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// adminMiddleware: Further checks if the session carries the Admin role.
	adminMiddleware := auth.RequireAdmin()

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService, cfg.Logger)
	calendarHandler := calendarHttp.NewHandler(cfg.Engine, cfg.BookingService, cfg.MobileBreakpoint)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		calendarHttp.RegisterRoutes(v1, calendarHandler, authMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, adminMiddleware)
	}

	return r
}

func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
