package http

import (
	"context"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/bitefinder/server/internal/adapters/signal"
	"github.com/bitefinder/server/internal/app"
	"github.com/bitefinder/server/internal/config"
)

func SetupRouter(ctx context.Context, cfg *config.Config, orch *app.Orchestrator) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.Secret))
	r.Use(sessions.Sessions("BitefinderSessions", store))
	r.Use(ClientTokenMiddleware())

	if len(cfg.CorsOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = cfg.CorsOrigins
		corsCfg.AllowCredentials = true
		corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
		r.Use(cors.New(corsCfg))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	log.Info().Str("module", "adapters.http").Msg("router setup")

	api := r.Group("/api")

	wsCtl := signal.NewWSController(orch, cfg.ReadLimit, cfg.SendBuffer)
	api.GET("/ws", func(c *gin.Context) {
		log.Info().Str("module", "adapters.http").Str("sid", c.GetString("client_token")).Msg("ws endpoint hit")
		wsCtl.HandleWS(ctx, c)
	})

	groups := api.Group("/groups", AuthRequired(cfg.Secret))
	h := &GroupHandler{Orch: orch}
	groups.POST("/create", h.Create)
	groups.POST("/join", h.Join)
	groups.GET("/:code", h.Get)
	groups.GET("/:code/members", h.Members)
	groups.POST("/:code/ready", h.Ready)
	groups.POST("/:code/leave", h.Leave)
	groups.POST("/:code/reset", h.Reset)

	rh := &RestaurantHandler{Orch: orch}
	api.GET("/restaurants/group/:code", AuthRequired(cfg.Secret), rh.GroupCatalog)

	return r
}
