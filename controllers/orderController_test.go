package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/footloft/footloft-api/initializers"
	"github.com/footloft/footloft-api/models"
	"gorm.io/gorm"
)

func TestGetMyOrdersUnauthorized(t *testing.T) {
	setupTestDB(t)
	router := newTestRouter()

	// An anonymous caller gets an explicit 401, not an empty list.
	w := performRequest(router, http.MethodGet, "/orders", nil, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected status 401, got %d", w.Code)
	}

	var resp map[string]any
	json.Unmarshal(w.Body.Bytes(), &resp)
	if _, hasOrders := resp["orders"]; hasOrders {
		t.Error("Unauthorized response must not contain an order list")
	}
}

func TestGetMyOrdersReturnsOwnOrdersOnly(t *testing.T) {
	setupTestDB(t)
	t.Setenv("JWT_SECRET", "test-secret")
	router := newTestRouter()

	mine, other := uint(1), uint(2)
	seed := []models.Order{
		{UserID: &mine, Amount: 900, Status: models.StatusOrderPlaced, PaymentMethod: models.PaymentMethodCOD},
		{UserID: &other, Amount: 100, Status: models.StatusOrderPlaced, PaymentMethod: models.PaymentMethodCOD},
		{UserID: nil, Amount: 50, Status: models.StatusPending, PaymentMethod: models.PaymentMethodPaystack},
	}
	for i := range seed {
		if err := initializers.DB.Create(&seed[i]).Error; err != nil {
			t.Fatalf("Failed to seed order: %v", err)
		}
	}

	token, err := generateJWT(models.User{Model: gorm.Model{ID: 1}, Email: "ada@example.com", Role: "user"})
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	w := performRequest(router, http.MethodGet, "/orders", nil, map[string]string{"Authorization": "Bearer " + token})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Orders []models.Order `json:"orders"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(resp.Orders) != 1 {
		t.Fatalf("Expected exactly my 1 order, got %d", len(resp.Orders))
	}
	if resp.Orders[0].Amount != 900 {
		t.Errorf("Got someone else's order: %+v", resp.Orders[0])
	}
}

func TestPlaceOrderCashOnDelivery(t *testing.T) {
	setupTestDB(t)
	router := newTestRouter()

	w := performRequest(router, http.MethodPost, "/order", checkoutRequest(), nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		OrderID uint `json:"orderId"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)

	var order models.Order
	if err := initializers.DB.Preload("Items").First(&order, resp.OrderID).Error; err != nil {
		t.Fatalf("Order not persisted: %v", err)
	}
	if order.PaymentMethod != models.PaymentMethodCOD {
		t.Errorf("Expected payment method COD, got %q", order.PaymentMethod)
	}
	if order.PaymentStatus {
		t.Error("Cash-on-delivery orders start unpaid")
	}
	if order.Status != models.StatusOrderPlaced {
		t.Errorf("Expected status %q, got %q", models.StatusOrderPlaced, order.Status)
	}
	if len(order.Items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(order.Items))
	}
}

func TestUpdateOrderStatusPermissiveGraph(t *testing.T) {
	setupTestDB(t)
	router := newTestRouter()
	token := adminToken(t)
	headers := map[string]string{"Authorization": "Bearer " + token}

	order := models.Order{Amount: 900, Status: models.StatusOrderPlaced, PaymentMethod: models.PaymentMethodCOD}
	if err := initializers.DB.Create(&order).Error; err != nil {
		t.Fatalf("Failed to seed order: %v", err)
	}

	// Forward, then backward: any status may be set from any other.
	for _, status := range []string{models.StatusDelivered, models.StatusPacking} {
		w := performRequest(router, http.MethodPost, "/admin/orders", map[string]any{"orderId": order.ID, "status": status}, headers)
		if w.Code != http.StatusOK {
			t.Fatalf("Setting status %q failed: %d %s", status, w.Code, w.Body.String())
		}

		var got models.Order
		initializers.DB.First(&got, order.ID)
		if got.Status != status {
			t.Errorf("Expected status %q, got %q", status, got.Status)
		}
	}
}

func TestUpdateOrderStatusValidation(t *testing.T) {
	setupTestDB(t)
	router := newTestRouter()
	token := adminToken(t)
	headers := map[string]string{"Authorization": "Bearer " + token}

	order := models.Order{Amount: 900, Status: models.StatusOrderPlaced, PaymentMethod: models.PaymentMethodCOD}
	initializers.DB.Create(&order)

	w := performRequest(router, http.MethodPost, "/admin/orders", map[string]any{"orderId": order.ID, "status": "Teleported"}, headers)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for unknown status, got %d", w.Code)
	}

	w = performRequest(router, http.MethodPost, "/admin/orders", map[string]any{"orderId": 9999, "status": models.StatusShipped}, headers)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for missing order, got %d", w.Code)
	}
}

func TestAdminOrderRoutesRequireAdminRole(t *testing.T) {
	setupTestDB(t)
	t.Setenv("JWT_SECRET", "test-secret")
	router := newTestRouter()

	w := performRequest(router, http.MethodGet, "/admin/orders", nil, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 without a token, got %d", w.Code)
	}

	token, err := generateJWT(models.User{Model: gorm.Model{ID: 2}, Email: "user@example.com", Role: "user"})
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	w = performRequest(router, http.MethodGet, "/admin/orders", nil, map[string]string{"Authorization": "Bearer " + token})
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected status 403 for non-admin, got %d", w.Code)
	}
}

// Item price snapshots must survive catalog edits: the order keeps the
// price paid, not the live price.
func TestOrderItemSnapshotsSurviveCatalogEdits(t *testing.T) {
	setupTestDB(t)
	router := newTestRouter()

	product := models.Product{Name: "Premium Leather Oxford Shoes", Description: "x", Price: 450, Category: "Men", SubCategory: "Footwear"}
	if err := initializers.DB.Create(&product).Error; err != nil {
		t.Fatalf("Failed to seed product: %v", err)
	}

	req := checkoutRequest()
	req.Items[0].ProductID = product.ID
	w := performRequest(router, http.MethodPost, "/order", req, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("Checkout failed: %d", w.Code)
	}
	var resp struct {
		OrderID uint `json:"orderId"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)

	initializers.DB.Model(&product).Update("price", 999)
	initializers.DB.Unscoped().Delete(&models.Product{}, product.ID)

	var item models.OrderItem
	if err := initializers.DB.Where("order_id = ?", resp.OrderID).First(&item).Error; err != nil {
		t.Fatalf("Order item not found: %v", err)
	}
	if item.Price != 450 {
		t.Errorf("Snapshot price changed to %v after catalog edit", item.Price)
	}
}
