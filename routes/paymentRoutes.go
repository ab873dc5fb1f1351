package routes

import (
	"github.com/footloft/footloft-api/controllers"
	"github.com/footloft/footloft-api/middlewares"
	"github.com/gin-gonic/gin"
)

func PaymentRoutes(server *gin.Engine) {
	payment := server.Group("/payment", middlewares.OptionalAuthenticate())
	{
		payment.POST("/initialize", controllers.InitializePayment)
		payment.GET("/verify", controllers.VerifyPayment)
	}
}
