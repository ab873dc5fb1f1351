package routes

import (
	"github.com/footloft/footloft-api/controllers"
	"github.com/footloft/footloft-api/middlewares"
	"github.com/gin-gonic/gin"
)

func OrderRoutes(server *gin.Engine) {
	server.POST("/order", middlewares.OptionalAuthenticate(), controllers.PlaceOrder)
	server.GET("/orders", middlewares.Authenticate(), controllers.GetMyOrders)

	admin := server.Group("/admin", middlewares.Authenticate(), middlewares.RequireAdmin())
	{
		admin.GET("/orders", controllers.GetOrders)
		admin.POST("/orders", controllers.UpdateOrderStatus)
	}
}
