package controllers

import (
	"fmt"
	"log"
	"math"
	"net/http"
	"os"
	"time"

	"github.com/footloft/footloft-api/events"
	"github.com/footloft/footloft-api/initializers"
	"github.com/footloft/footloft-api/models"
	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
)

const defaultPaystackURL = "https://api.paystack.co"

func paystackBaseURL() string {
	return initializers.Getenv("PAYSTACK_API_URL", defaultPaystackURL)
}

type paystackInitializeResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

type paystackVerifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status   string `json:"status"`
		Metadata struct {
			OrderID uint `json:"orderId"`
		} `json:"metadata"`
	} `json:"data"`
}

// initializeTransaction opens a Paystack payment session. The amount is
// sent in subunits and the internal order id rides along as metadata so
// verify can find its way back to the order.
func initializeTransaction(email string, amount float64, reference string, orderID uint) (*paystackInitializeResponse, error) {
	secret := os.Getenv("PAYSTACK_SECRET_KEY")
	if secret == "" {
		return nil, fmt.Errorf("paystack secret key is not set")
	}

	body := map[string]any{
		"email":        email,
		"amount":       int64(math.Round(amount * 100)),
		"reference":    reference,
		"callback_url": initializers.Getenv("FRONTEND_URL", "http://localhost:3000") + "/place-order/verify",
		"currency":     initializers.Getenv("PAYSTACK_CURRENCY", "NGN"),
		"metadata":     map[string]any{"orderId": orderID},
	}

	var parsed paystackInitializeResponse
	resp, err := resty.New().SetTimeout(30 * time.Second).R().
		SetHeader("Authorization", "Bearer "+secret).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&parsed).
		Post(paystackBaseURL() + "/transaction/initialize")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK || !parsed.Status || parsed.Data.AuthorizationURL == "" {
		return nil, fmt.Errorf("paystack initialize failed with status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	return &parsed, nil
}

func verifyTransaction(reference string) (*paystackVerifyResponse, error) {
	secret := os.Getenv("PAYSTACK_SECRET_KEY")
	if secret == "" {
		return nil, fmt.Errorf("paystack secret key is not set")
	}

	var parsed paystackVerifyResponse
	resp, err := resty.New().SetTimeout(30 * time.Second).R().
		SetHeader("Authorization", "Bearer "+secret).
		SetResult(&parsed).
		Get(paystackBaseURL() + "/transaction/verify/" + reference)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK || !parsed.Status {
		return nil, fmt.Errorf("paystack verify failed with status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	return &parsed, nil
}

// InitializePayment persists a pending order and opens a gateway
// session for it. If the gateway refuses, the just-created order is
// deleted best-effort so a retry does not stack ghost orders.
func InitializePayment(ctx *gin.Context) {
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
		PaymentMethod: models.PaymentMethodPaystack,
		PaymentStatus: false,
		Status:        models.StatusPending,
	}

	if err := createOrderWithItems(&order, req.Items); err != nil {
		log.Println("Order creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create order")
		return
	}

	reference := fmt.Sprintf("ft_%d_%d", order.ID, time.Now().UnixMilli())

	resp, err := initializeTransaction(req.Address.Email, req.Amount, reference, order.ID)
	if err != nil {
		log.Println("Paystack initialize error:", err)
		// Best-effort cleanup of the pending order; a failed delete is
		// swallowed so the caller still gets the gateway error.
		if delErr := initializers.DB.Unscoped().Select("Items").Delete(&order).Error; delErr != nil {
			log.Println("Failed to clean up pending order:", delErr)
		}
		sendErrorResponse(ctx, http.StatusBadGateway, "Failed to initialize payment")
		return
	}

	if err := initializers.DB.Model(&order).Update("paystack_reference", resp.Data.Reference).Error; err != nil {
		log.Printf("Order %d created, but reference %s not saved: %v", order.ID, resp.Data.Reference, err)
	}

	go events.PublishOrderEvent(events.OrderCreated, order)

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"authorization_url": resp.Data.AuthorizationURL,
		"reference":         resp.Data.Reference,
		"orderId":           order.ID,
	})
}

// VerifyPayment reconciles a pending order against the gateway. Only a
// gateway status of "success" flips the order to paid; anything else
// leaves it awaiting payment, with no automatic retry.
func VerifyPayment(ctx *gin.Context) {
	reference := ctx.Query("reference")
	if reference == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, "Missing reference")
		return
	}

	resp, err := verifyTransaction(reference)
	if err != nil {
		log.Println("Paystack verify error:", err)
		sendErrorResponse(ctx, http.StatusBadGateway, "Payment verification failed")
		return
	}

	if resp.Data.Status != "success" {
		sendErrorResponse(ctx, http.StatusBadRequest, "Payment verification failed")
		return
	}

	orderID := resp.Data.Metadata.OrderID
	if orderID == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid payment data")
		return
	}

	result := initializers.DB.Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]any{
			"payment_status": true,
			"status":         models.StatusOrderPlaced,
		})
	if result.Error != nil {
		log.Println("Failed to mark order paid:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		// The gateway charged but no matching order exists. There is no
		// compensating action here; the mismatch is logged for manual
		// reconciliation.
		log.Printf("Payment %s verified but order %d not found", reference, orderID)
		sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		return
	}

	var order models.Order
	if err := initializers.DB.Preload("Items").First(&order, orderID).Error; err == nil {
		finalizeOrder(order, events.OrderPaid)
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "orderId": orderID})
}
