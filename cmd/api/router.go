package api

import (
	"net/http"

	authDelivery "cryptnote-backend/internal/auth/delivery"
	authUsecase "cryptnote-backend/internal/auth/usecase"
	noteDelivery "cryptnote-backend/internal/note/delivery"
	noteUsecase "cryptnote-backend/internal/note/usecase"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authUc authUsecase.AuthUsecase, noteUc noteUsecase.NoteUsecase) {
	authHandler := authDelivery.NewAuthHandler(authUc)
	noteHandler := noteDelivery.NewNoteHandler(noteUc)
	session := authDelivery.SessionMiddleware(authUc)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/createuser", authHandler.CreateUser)
			auth.POST("/login", authHandler.Login)
			auth.POST("/forgotpassword", authHandler.ForgotPassword)
			auth.POST("/resetpassword/:token", authHandler.ResetPassword)
			auth.POST("/sendotp", authHandler.SendOtp)
			auth.POST("/verifyotp", authHandler.VerifyOtp)
			auth.POST("/checkemail", authHandler.CheckEmail)

			auth.POST("/getuser", session, authHandler.GetUser)
			auth.PUT("/updateuser", session, authHandler.UpdateUser)
			auth.DELETE("/deleteuser", session, authHandler.DeleteUser)
		}

		// Note routes (protected)
		notes := api.Group("/notes")
		notes.Use(session)
		{
			notes.GET("/fetchallnotes", noteHandler.FetchAllNotes)
			notes.POST("/addnote", noteHandler.AddNote)
			notes.PUT("/updatenote/:id", noteHandler.UpdateNote)
			notes.DELETE("/deletenote/:id", noteHandler.DeleteNote)
		}
	}
}
