package routes

import (
	"rosterhub/activities"
	"rosterhub/auth"
	"rosterhub/live"

	"github.com/gin-gonic/gin"
)

func SetupAPIRoutes(r *gin.Engine) {
	r.GET("/activities", activities.HandleGetActivities)
	r.POST("/login", auth.HandleLogin)
	r.POST("/activities/:name/signup", auth.OptionalTeacher(), activities.HandleSignup)
	r.DELETE("/activities/:name/unregister", auth.RequireTeacher(), activities.HandleUnregister)

	// Roster change notifications
	r.GET("/ws", live.HandleSocket)
}
