package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"labtrack-backend/config"
	"labtrack-backend/internal/auth"
	"labtrack-backend/internal/mw"
	"labtrack-backend/internal/notification"
	"labtrack-backend/internal/policy"
	"labtrack-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, tokens *auth.TokenService, webpushOptions *webpush.Options, workers *notification.WorkerPool, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, tokens, webpushOptions, workers, &cfg.Auth)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	// The response cache only fronts immutable endpoints; inventory is always
	// recomputed per request.
	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	authn := mw.Authn(tokens)
	adminWrite := mw.Authorize(policy.AdminOrReadOnly)
	maintGate := mw.Authorize(policy.ReadCreateElseAdmin)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// Open endpoints: account registration and token issuance.
		api.POST("/register", handler.Register)
		api.POST("/login", handler.Login)
		api.POST("/token/refresh", handler.RefreshToken)
		api.GET("/vapid_public_key", caching, handler.GetVAPIDPublicKey)
	}

	authed := api.Group("", authn)
	{
		authed.GET("/redirect-after-login", handler.RedirectAfterLogin)

		users := authed.Group("/users", adminWrite)
		{
			users.GET("", handler.ListUsers)
			users.POST("", handler.CreateUser)
			users.GET("/:id", handler.GetUser)
			users.PUT("/:id", handler.UpdateUser)
			users.PATCH("/:id", handler.UpdateUser)
			users.DELETE("/:id", handler.DeleteUser)
		}

		labs := authed.Group("/labs", adminWrite)
		{
			labs.GET("", handler.ListLabs)
			labs.POST("", handler.CreateLab)
			labs.GET("/:id", handler.GetLab)
			labs.PUT("/:id", handler.UpdateLab)
			labs.PATCH("/:id", handler.UpdateLab)
			labs.DELETE("/:id", handler.DeleteLab)
			labs.GET("/:id/pcs", handler.ListLabPCs)
			labs.POST("/:id/pcs", handler.CreateLabPC)
		}

		pcs := authed.Group("/pcs", adminWrite)
		{
			pcs.GET("", handler.ListPCs)
			pcs.POST("", handler.CreatePC)
			pcs.GET("/:id", handler.GetPC)
			pcs.PUT("/:id", handler.UpdatePC)
			pcs.PATCH("/:id", handler.UpdatePC)
			pcs.DELETE("/:id", handler.DeletePC)
		}

		software := authed.Group("/software", adminWrite)
		{
			software.GET("", handler.ListSoftware)
			software.POST("", handler.CreateSoftware)
			software.GET("/:id", handler.GetSoftware)
			software.PUT("/:id", handler.UpdateSoftware)
			software.PATCH("/:id", handler.UpdateSoftware)
			software.DELETE("/:id", handler.DeleteSoftware)
		}

		equipment := authed.Group("/equipment", adminWrite)
		{
			equipment.GET("", handler.ListEquipment)
			equipment.POST("", handler.CreateEquipment)
			equipment.GET("/:id", handler.GetEquipment)
			equipment.PUT("/:id", handler.UpdateEquipment)
			equipment.PATCH("/:id", handler.UpdateEquipment)
			equipment.DELETE("/:id", handler.DeleteEquipment)
		}

		maintenance := authed.Group("/maintenance", maintGate)
		{
			maintenance.GET("", handler.ListMaintenance)
			maintenance.POST("", handler.CreateMaintenance)
			maintenance.GET("/:id", handler.GetMaintenance)
			maintenance.PUT("/:id", handler.ResolveMaintenance)
			maintenance.PATCH("/:id", handler.ResolveMaintenance)
			maintenance.DELETE("/:id", handler.DeleteMaintenance)
		}

		authed.GET("/inventory", adminWrite, handler.GetInventory)

		authed.POST("/tickets/create", handler.CreateTicket)
		authed.GET("/tickets", handler.ListTickets)

		subscriptions := authed.Group("/subscriptions", adminWrite)
		{
			subscriptions.GET("", handler.GetSubscription)
			subscriptions.PUT("", handler.PutSubscription)
			subscriptions.DELETE("", handler.DeleteSubscription)
		}
	}

	return r
}
