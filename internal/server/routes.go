package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"chirp/internal/feed"
	"chirp/internal/identity"
	"chirp/internal/likes"
	"chirp/internal/posts"
)

// RegisterRoutes builds the gin engine with all feed service routes
func (s *Server) RegisterRoutes() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggingMiddleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-User-ID", "X-User-Name", "X-User-Image"},
		AllowCredentials: true,
	}))

	feedHandler := feed.NewHandler(feed.NewService(s.db))
	likesHandler := likes.NewHandler(likes.NewService(s.db))
	postsHandler := posts.NewHandler(posts.NewService(s.db, s.gate, s.regen, s.logger))

	r.GET("/health", s.healthHandler)

	api := r.Group("/api")
	{
		// Feed listing works for anonymous viewers too
		api.GET("/feed", identity.OptionalAuth(), feedHandler.List)

		authed := api.Group("")
		authed.Use(identity.RequireAuth())
		{
			authed.POST("/posts", postsHandler.Create)
			authed.POST("/posts/:id/like", likesHandler.Toggle)
		}
	}

	return r
}

func (s *Server) healthHandler(c *gin.Context) {
	response := make(map[string]interface{})
	response["database"] = s.db.Health()
	c.JSON(http.StatusOK, response)
}
