package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/trungvu222/youth-handbook-sub003/controllers"
	"github.com/trungvu222/youth-handbook-sub003/middleware"
)

func SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/refresh", controllers.RefreshToken)
	}

	users := api.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("/", middleware.ElevatedOnlyMiddleware(), controllers.GetUsers)
		users.GET("/me", controllers.GetMe)
		users.GET("/:id", controllers.GetUserByID)
		users.PUT("/:id", controllers.UpdateUser)
		users.DELETE("/:id", middleware.AdminOnlyMiddleware(), controllers.DeleteUser)
		users.GET("/:id/points-history", controllers.GetUserPointsHistory)
	}

	units := api.Group("/units")
	units.Use(middleware.AuthMiddleware())
	{
		units.GET("/", controllers.GetUnits)
		units.GET("/:id", controllers.GetUnit)
		units.POST("/", middleware.AdminOnlyMiddleware(), controllers.CreateUnit)
		units.PUT("/:id", middleware.AdminOnlyMiddleware(), controllers.UpdateUnit)
		units.DELETE("/:id", middleware.AdminOnlyMiddleware(), controllers.DeleteUnit)
	}

	activities := api.Group("/activities")
	activities.Use(middleware.AuthMiddleware())
	{
		activities.GET("/", controllers.GetActivities)
		activities.GET("/mine", controllers.GetMyActivities)
		activities.GET("/:id", controllers.GetActivity)
		activities.POST("/", middleware.ElevatedOnlyMiddleware(), controllers.CreateActivity)
		activities.PUT("/:id", middleware.ElevatedOnlyMiddleware(), controllers.UpdateActivity)
		activities.DELETE("/:id", middleware.AdminOnlyMiddleware(), controllers.DeleteActivity)

		activities.POST("/:id/register", controllers.RegisterForActivity)
		activities.DELETE("/:id/register", controllers.UnregisterFromActivity)
		activities.POST("/:id/checkin", controllers.SelfCheckIn)
		activities.POST("/:id/qr", middleware.ElevatedOnlyMiddleware(), controllers.RotateCheckInCode)
		activities.POST("/:id/complete", middleware.ElevatedOnlyMiddleware(), controllers.CompleteActivity)

		// Attendance & points engine
		activities.GET("/:id/attendance", middleware.ElevatedOnlyMiddleware(), controllers.GetActivityAttendance)
		activities.POST("/:id/report-absent", controllers.ReportAbsent)
		activities.PUT("/:id/attendance/:participantId", middleware.ElevatedOnlyMiddleware(), controllers.UpdateAttendanceStatus)
		activities.POST("/:id/batch-checkin", middleware.ElevatedOnlyMiddleware(), controllers.BatchCheckIn)
	}

	points := api.Group("/points")
	points.Use(middleware.AuthMiddleware())
	{
		points.GET("/leaderboard", controllers.GetLeaderboard)
		points.POST("/adjust", middleware.AdminOnlyMiddleware(), controllers.AdjustPoints)
	}

	documents := api.Group("/documents")
	documents.Use(middleware.AuthMiddleware())
	{
		documents.GET("/", controllers.GetDocuments)
		documents.GET("/:id", controllers.GetDocument)
		documents.POST("/", middleware.ElevatedOnlyMiddleware(), controllers.CreateDocument)
		documents.DELETE("/:id", middleware.ElevatedOnlyMiddleware(), controllers.DeleteDocument)
	}

	posts := api.Group("/posts")
	posts.Use(middleware.AuthMiddleware())
	{
		posts.GET("/", controllers.GetPosts)
		posts.GET("/:id", controllers.GetPost)
		posts.POST("/", middleware.ElevatedOnlyMiddleware(), controllers.CreatePost)
		posts.PUT("/:id", middleware.ElevatedOnlyMiddleware(), controllers.UpdatePost)
		posts.DELETE("/:id", middleware.ElevatedOnlyMiddleware(), controllers.DeletePost)
	}

	surveys := api.Group("/surveys")
	surveys.Use(middleware.AuthMiddleware())
	{
		surveys.GET("/", controllers.GetSurveys)
		surveys.GET("/:id", controllers.GetSurvey)
		surveys.POST("/", middleware.ElevatedOnlyMiddleware(), controllers.CreateSurvey)
		surveys.DELETE("/:id", middleware.ElevatedOnlyMiddleware(), controllers.DeleteSurvey)
	}

	exams := api.Group("/exams")
	exams.Use(middleware.AuthMiddleware())
	{
		exams.GET("/", controllers.GetExams)
		exams.GET("/:id", controllers.GetExam)
		exams.POST("/", middleware.ElevatedOnlyMiddleware(), controllers.CreateExam)
		exams.DELETE("/:id", middleware.ElevatedOnlyMiddleware(), controllers.DeleteExam)
		exams.POST("/:id/submit", controllers.SubmitExamResult)
	}

	suggestions := api.Group("/suggestions")
	suggestions.Use(middleware.AuthMiddleware())
	{
		suggestions.GET("/", controllers.GetSuggestions)
		suggestions.POST("/", controllers.CreateSuggestion)
		suggestions.PUT("/:id/respond", middleware.ElevatedOnlyMiddleware(), controllers.RespondToSuggestion)
	}
}
