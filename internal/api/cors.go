package api

import (
	"alcyxob/fitness-admin/internal/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS lets the console frontend call the API from its own origin. With no
// origins configured, debug mode accepts any origin and release mode none.
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}

	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		allowAny := gin.Mode() == gin.DebugMode
		corsConfig.AllowOriginFunc = func(string) bool { return allowAny }
	}

	return cors.New(corsConfig)
}
