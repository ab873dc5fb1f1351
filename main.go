package main

import (
	"os"
	"time"

	"github.com/footloft/footloft-api/events"
	"github.com/footloft/footloft-api/initializers"
	"github.com/footloft/footloft-api/middlewares"
	"github.com/footloft/footloft-api/routes"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func init() {
	initializers.LoadEnv()
	initializers.ConnectToDB()
	initializers.SyncDatabase()
	initializers.ConnectToCache()
	events.Init(os.Getenv("KAFKA_BROKER"))
}

func main() {
	server := gin.Default()
	server.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", initializers.Getenv("FRONTEND_URL", "https://www.footloft.store")},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	server.Use(middlewares.Metrics())
	routes.DefaultRoutes(server)
	routes.AuthRoutes(server)
	routes.ProductRoutes(server)
	routes.CategoryRoutes(server)
	routes.OrderRoutes(server)
	routes.PaymentRoutes(server)
	server.Run()
}
