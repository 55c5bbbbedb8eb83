package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nekogravitycat/banquet-calendar/internal/api"
	"github.com/nekogravitycat/banquet-calendar/internal/auth"
	"github.com/nekogravitycat/banquet-calendar/internal/booking"
	"github.com/nekogravitycat/banquet-calendar/internal/calendar"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction     bool
	ProdOrigins      string
	JWTSecret        string
	JWTTTL           time.Duration
	BookingRepo      booking.Repository
	Calendar         calendar.Options
	MobileBreakpoint int
	Logger           *zap.Logger
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router         *gin.Engine
	JWTManager     *auth.JWTManager
	BookingService booking.Service
	Engine         *calendar.Engine
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	// Init Components
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	engine := calendar.NewEngine(cfg.Calendar)

	// Booking Module
	bookingService := booking.NewService(cfg.BookingRepo)

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:     cfg.IsProduction,
		ProdOrigins:      cfg.ProdOrigins,
		BookingService:   bookingService,
		Engine:           engine,
		MobileBreakpoint: cfg.MobileBreakpoint,
		JWTManager:       jwtManager,
		Logger:           log,
	})

	return &Container{
		Router:         router,
		JWTManager:     jwtManager,
		BookingService: bookingService,
		Engine:         engine,
	}
}
