package controllers

import (
	"log"
	"net/http"

	"github.com/footloft/footloft-api/events"
	"github.com/footloft/footloft-api/initializers"
	"github.com/footloft/footloft-api/models"
	"github.com/footloft/footloft-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// userIDFromContext returns the authenticated user's id, or nil for
// guests. Guest checkout is allowed; orders then carry no user
// reference.
func userIDFromContext(ctx *gin.Context) *uint {
	userClaims, exists := ctx.Get("user")
	if !exists {
		return nil
	}
	claims, ok := userClaims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	id, ok := claims["user_id"].(float64)
	if !ok {
		return nil
	}
	userID := uint(id)
	return &userID
}

// createOrderWithItems persists the order and its item snapshots in one
// transaction so a half-written order can never be observed.
func createOrderWithItems(order *models.Order, items []models.OrderItem) error {
	return initializers.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].ID = 0
			items[i].OrderID = order.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		order.Items = items
		return nil
	})
}

// finalizeOrder fires the post-finalization side effects: customer
// receipt, admin alert, order event. All best-effort; a failure is
// logged and never blocks or rolls back the order.
func finalizeOrder(order models.Order, eventType string) {
	go func(orderID uint) {
		if err := utils.SendOrderReceipt(orderID); err != nil {
			log.Println("Failed to send order receipt:", err)
		}
		if err := utils.SendAdminAlert(orderID); err != nil {
			log.Println("Failed to send admin alert:", err)
		}
	}(order.ID)
	go events.PublishOrderEvent(eventType, order)
}

// PlaceOrder handles cash-on-delivery checkout: the order is persisted
// directly as unpaid with no gateway round-trip.
func PlaceOrder(ctx *gin.Context) {
	var req models.PlaceOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Printf("JSON binding error: %v", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Missing amount, address, or items")
		return
	}

	order := models.Order{
		UserID:        userIDFromContext(ctx),
		Amount:        req.Amount,
		Address:       req.Address,
		PaymentMethod: models.PaymentMethodCOD,
		PaymentStatus: false,
		Status:        models.StatusOrderPlaced,
	}

	if err := createOrderWithItems(&order, req.Items); err != nil {
		log.Println("Order creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to place order")
		return
	}

	finalizeOrder(order, events.OrderCreated)

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": "Order placed successfully.",
		"orderId": order.ID,
	})
}

// GetMyOrders lists the authenticated customer's own orders. The route
// sits behind Authenticate: an anonymous caller gets an explicit 401,
// never an empty list.
func GetMyOrders(ctx *gin.Context) {
	userID := userIDFromContext(ctx)
	if userID == nil {
		sendErrorResponse(ctx, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var orders []models.Order
	result := initializers.DB.Preload("Items").
		Where("user_id = ?", *userID).
		Order("created_at desc").
		Find(&orders)
	if result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch orders.")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders})
}

// GetOrders lists every order for the admin console, newest first.
func GetOrders(ctx *gin.Context) {
	var orders []models.Order
	result := initializers.DB.Preload("Items").
		Order("created_at desc").
		Find(&orders)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch orders", result.Error)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"orders": orders})
}

// UpdateOrderStatus sets a new fulfilment status. Any status from the
// vocabulary may be set from any other; progression is not enforced.
func UpdateOrderStatus(ctx *gin.Context) {
	var orderStatusData struct {
		OrderID uint   `json:"orderId" binding:"required"`
		Status  string `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&orderStatusData); err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Missing orderId or status")
		return
	}

	if !validOrderStatus(orderStatusData.Status) {
		sendErrorResponse(ctx, http.StatusBadRequest, "Unknown order status")
		return
	}

	result := initializers.DB.Model(&models.Order{}).
		Where("id = ?", orderStatusData.OrderID).
		Update("status", orderStatusData.Status)
	if result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update order status")
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully."})
}

func validOrderStatus(status string) bool {
	for _, s := range models.OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}
