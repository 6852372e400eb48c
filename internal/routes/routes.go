package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/unimatch/campus-platform/internal/config"
	"github.com/unimatch/campus-platform/internal/database"
	"github.com/unimatch/campus-platform/internal/handlers"
	"github.com/unimatch/campus-platform/internal/middleware"
	"github.com/unimatch/campus-platform/internal/services"
	"github.com/unimatch/campus-platform/internal/ws"
)

func SetupRouter(cfg *config.Config, hub *ws.Hub) *gin.Engine {
	router := gin.Default()

	// CORS configuration
	router.Use(cors.New(cors.Config{
		AllowOriginFunc:  func(origin string) bool { return true },
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":       "ok",
			"db_connected": database.GetDB() != nil,
		})
	})

	// Initialize services
	authService := services.NewAuthService(cfg)
	emailService := services.NewEmailService(cfg)
	profileService := services.NewProfileService()
	teamService := services.NewTeamService()
	invitationService := services.NewInvitationService()
	matchService := services.NewMatchService()
	conversationService := services.NewConversationService()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, teamService, emailService)
	profileHandler := handlers.NewProfileHandler(profileService)
	teamHandler := handlers.NewTeamHandler(teamService, authService)
	invitationHandler := handlers.NewInvitationHandler(invitationService, authService, emailService)
	matchHandler := handlers.NewMatchHandler(matchService)
	conversationHandler := handlers.NewConversationHandler(conversationService, hub)
	wsHandler := handlers.NewWebSocketHandler(hub, conversationService)

	// API routes
	api := router.Group("/api")

	// Middleware to check database readiness
	api.Use(func(c *gin.Context) {
		if database.GetDB() == nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error": "Service initializing, please try again shortly",
			})
			return
		}
		c.Next()
	})

	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/verify-email", authHandler.VerifyEmail)

			// Protected auth routes
			authProtected := auth.Group("")
			authProtected.Use(middleware.AuthMiddleware(authService))
			{
				authProtected.GET("/me", authHandler.GetCurrentUser)
				authProtected.POST("/change-password", authHandler.ChangePassword)
				authProtected.DELETE("/account", authHandler.DeleteAccount)
			}
		}

		// Everything below requires a verified account
		verified := api.Group("")
		verified.Use(middleware.AuthMiddleware(authService), middleware.RequireVerified())
		{
			// Profiles
			profiles := verified.Group("/profiles")
			{
				profiles.GET("/search", profileHandler.SearchProfiles)
				profiles.GET("/:id", profileHandler.GetProfile)
				profiles.PUT("/me", profileHandler.UpdateProfile)
			}

			// Teams
			teams := verified.Group("/teams")
			{
				teams.POST("", teamHandler.CreateTeam)
				teams.GET("", teamHandler.ListTeams)
				teams.GET("/mine", teamHandler.GetMyTeam)
				teams.GET("/:id", teamHandler.GetTeam)
				teams.POST("/leave", teamHandler.LeaveTeam)
				teams.DELETE("/members/:memberId", teamHandler.RemoveMember)
			}

			// Invitations
			invitations := verified.Group("/invitations")
			{
				invitations.POST("", invitationHandler.SendInvitation)
				invitations.GET("", invitationHandler.ListInvitations)
				invitations.POST("/:id/accept", invitationHandler.AcceptInvitation)
				invitations.POST("/:id/decline", invitationHandler.DeclineInvitation)
			}

			// Recommendations
			matches := verified.Group("/matches")
			{
				matches.GET("/teams", matchHandler.RecommendTeams)
				matches.GET("/peers", matchHandler.RecommendPeers)
			}

			// Conversations
			conversations := verified.Group("/conversations")
			{
				conversations.GET("", conversationHandler.ListConversations)
				conversations.POST("/direct", conversationHandler.StartConversation)
				conversations.GET("/:id/messages", conversationHandler.GetMessages)
				conversations.POST("/:id/messages", conversationHandler.SendMessage)
			}

			// Live updates
			verified.GET("/ws", wsHandler.Subscribe)
		}
	}

	return router
}
