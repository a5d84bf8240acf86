package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(participants *ParticipantController, messages *MessageController) *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())

	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	router.POST("/participants", participants.Register)
	router.GET("/participants", participants.List)
	router.POST("/status", participants.Ping)

	router.POST("/messages", messages.Send)
	router.GET("/messages", messages.List)
	router.PUT("/messages/:id", messages.Edit)
	router.DELETE("/messages/:id", messages.Delete)

	return router
}
