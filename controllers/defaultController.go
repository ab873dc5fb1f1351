package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Footloft API.

The following are the endpoints for this API:

AUTH
- POST "/auth/signup" - Create user account
- POST "/auth/login" - Access user account

PRODUCT
- GET "/product" - List products (category, subcategory, bestseller, search filters)
- GET "/product/:id" - Get product by ID
- POST "/product" - Create product (admin)
- PUT "/product/:id" - Update product (admin)
- DELETE "/product/:id" - Delete product (admin)
- POST "/upload" - Upload product image (admin)

CATEGORY
- GET "/categories" | GET "/subcategories" - List
- POST, DELETE under "/admin/categories" and "/admin/subcategories" (admin)

ORDER
- POST "/order" - Place cash-on-delivery order
- GET "/orders" - Orders for the signed-in customer
- GET "/admin/orders" - All orders (admin)
- POST "/admin/orders" - Update order status (admin)

PAYMENT
- POST "/payment/initialize" - Start a Paystack payment for a new order
- GET "/payment/verify" - Verify a payment reference`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
