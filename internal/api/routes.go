package api

import (
	"net/http"

	"fitlink/coaching-app/internal/domain"
	"fitlink/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires all HTTP endpoints onto the router.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	profileService service.ProfileService,
	connectionService service.ConnectionService,
	programService service.ProgramService,
	checkInService service.CheckInService,
	messageService service.MessageService,
	sessionService service.SessionService,
) {
	authHandler := NewAuthHandler(authService)
	profileHandler := NewProfileHandler(profileService)
	connectionHandler := NewConnectionHandler(connectionService)
	programHandler := NewProgramHandler(programService)
	checkInHandler := NewCheckInHandler(checkInService)
	messageHandler := NewMessageHandler(messageService)
	sessionHandler := NewSessionHandler(sessionService)

	authMiddleware := AuthMiddleware(jwtSecret)
	trainerOnly := RoleMiddleware(domain.RoleTrainer)
	clientOnly := RoleMiddleware(domain.RoleClient)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		// --- Profile Routes ---
		protected.GET("/me", profileHandler.GetMe)
		protected.PUT("/me", profileHandler.UpdateMe)
		protected.PUT("/me/trainer-profile", trainerOnly, profileHandler.UpdateTrainerProfile)
		protected.PUT("/me/client-profile", clientOnly, profileHandler.UpdateClientProfile)
		protected.POST("/me/avatar-upload-url", profileHandler.RequestAvatarUploadURL)
		protected.GET("/trainers", profileHandler.ListTrainers)
		protected.GET("/clients", trainerOnly, profileHandler.ListClients)

		// --- Connection Request Routes ---
		requestGroup := protected.Group("/requests")
		{
			requestGroup.POST("", clientOnly, connectionHandler.SubmitRequest)
			requestGroup.GET("", connectionHandler.ListRequests)
			requestGroup.POST("/:requestId/approve", trainerOnly, connectionHandler.ApproveRequest)
			requestGroup.POST("/:requestId/reject", trainerOnly, connectionHandler.RejectRequest)
		}

		// --- Program Routes ---
		programGroup := protected.Group("/programs")
		{
			programGroup.POST("", trainerOnly, programHandler.CreateTemplate)
			programGroup.GET("", trainerOnly, programHandler.ListTemplates)
			programGroup.PUT("/:programId", trainerOnly, programHandler.UpdateTemplate)
			programGroup.DELETE("/:programId", trainerOnly, programHandler.DeleteTemplate)
			programGroup.POST("/:programId/assign", trainerOnly, programHandler.AssignTemplate)
		}
		protected.GET("/clients/:clientId/programs", trainerOnly, programHandler.ListClientPrograms)
		protected.POST("/clients/:clientId/programs", trainerOnly, programHandler.CreateClientProgram)
		protected.GET("/my/programs", clientOnly, programHandler.ListMyPrograms)

		// --- Check-in Routes ---
		checkInGroup := protected.Group("/checkins")
		{
			checkInGroup.POST("", clientOnly, checkInHandler.SubmitCheckIn)
			checkInGroup.GET("", trainerOnly, checkInHandler.ListClientCheckIns)
			checkInGroup.POST("/photo-upload-url", clientOnly, checkInHandler.RequestPhotoUploadURL)
			checkInGroup.GET("/:checkinId/photos", checkInHandler.GetCheckInPhotos)
			checkInGroup.POST("/:checkinId/review", trainerOnly, checkInHandler.ReviewCheckIn)
			checkInGroup.PUT("/:checkinId/summary", trainerOnly, checkInHandler.SetCheckInSummary)
		}
		protected.GET("/my/checkins", clientOnly, checkInHandler.ListMyCheckIns)

		// --- Message Routes ---
		messageGroup := protected.Group("/messages")
		{
			messageGroup.POST("", messageHandler.SendMessage)
			messageGroup.POST("/read", messageHandler.MarkMessagesRead)
			messageGroup.GET("/with/:userId", messageHandler.GetConversation)
			messageGroup.GET("/with/:userId/unread", messageHandler.GetUnreadCount)
		}

		// --- Session Routes ---
		sessionGroup := protected.Group("/sessions")
		{
			sessionGroup.POST("", trainerOnly, sessionHandler.ScheduleSession)
			sessionGroup.GET("", trainerOnly, sessionHandler.ListMySessions)
			sessionGroup.PATCH("/:sessionId", trainerOnly, sessionHandler.UpdateSession)
		}
		protected.GET("/my/sessions", clientOnly, sessionHandler.ListClientSessions)
	}
}
