package routes

import (
	"github.com/footloft/footloft-api/controllers"
	"github.com/footloft/footloft-api/middlewares"
	"github.com/gin-gonic/gin"
)

func CategoryRoutes(server *gin.Engine) {
	server.GET("/categories", controllers.GetCategories)
	server.GET("/subcategories", controllers.GetSubCategories)

	admin := server.Group("/admin", middlewares.Authenticate(), middlewares.RequireAdmin())
	{
		admin.POST("/categories", controllers.CreateCategory)
		admin.DELETE("/categories/:id", controllers.DeleteCategory)
		admin.POST("/subcategories", controllers.CreateSubCategory)
		admin.DELETE("/subcategories/:id", controllers.DeleteSubCategory)
	}
}
