package http

import (
	"time"

	"github.com/fikadugetaye72/fruit/internal/config"
	"github.com/fikadugetaye72/fruit/internal/http/handlers"
	"github.com/fikadugetaye72/fruit/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, version string, cfg *config.Config) {
	h := handlers.NewHandler(db, handlers.HandlerConfig{
		MaxAdReward:  cfg.MaxAdReward,
		MaxAdsPerDay: cfg.MaxAdsPerDay,
	})
	healthHandler := handlers.NewHealthHandler(db, version)

	apiRateWindow := time.Duration(cfg.APIRateWindow) * time.Second
	authRateWindow := time.Duration(cfg.AuthRateWindow) * time.Second

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(cfg.APIRateLimit, apiRateWindow))

	// Auth (tighter limit against credential stuffing)
	authRL := middleware.RedisRateLimit(cfg.AuthRateLimit, authRateWindow)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authRL, h.Register)
		auth.POST("/login", authRL, h.Login)
	}

	// Profile
	me := v1.Group("/me")
	me.Use(middleware.JWT())
	{
		me.GET("", h.Me)
		me.PUT("", h.UpdateMe)
		me.PUT("/password", h.ChangePassword)
		me.GET("/stats", h.Stats)
	}

	// Coin economy
	coins := v1.Group("/coins")
	coins.Use(middleware.JWT())
	{
		coins.POST("/watch-ad", h.WatchAd)
		coins.POST("/claim-daily-reward", h.ClaimDailyReward)
		coins.POST("/use-referral", h.UseReferralCode)
		coins.POST("/spend", h.SpendCoins)
		coins.GET("/history", h.CoinHistory)
	}

	// Referral stats
	referral := v1.Group("/referral")
	referral.Use(middleware.JWT())
	{
		referral.GET("/stats", h.ReferralStats)
	}
}
