package routes

import (
	"github.com/footloft/footloft-api/controllers"
	"github.com/footloft/footloft-api/middlewares"
	"github.com/gin-gonic/gin"
)

func ProductRoutes(server *gin.Engine) {
	server.GET("/product", controllers.GetProducts)
	server.GET("/product/:id", controllers.GetProduct)

	admin := server.Group("/", middlewares.Authenticate(), middlewares.RequireAdmin())
	{
		admin.POST("/product", controllers.CreateProduct)
		admin.PUT("/product/:id", controllers.UpdateProduct)
		admin.DELETE("/product/:id", controllers.DeleteProduct)
		admin.POST("/upload", controllers.UploadImage)
	}
}
