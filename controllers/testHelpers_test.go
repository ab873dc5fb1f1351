package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/footloft/footloft-api/initializers"
	"github.com/footloft/footloft-api/middlewares"
	"github.com/footloft/footloft-api/models"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points the global DB at a fresh in-memory SQLite database
// for one test.
func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Category{},
		&models.SubCategory{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	initializers.DB = db
}

// setupTestCache points the global cache at an in-process redis for
// one test.
func setupTestCache(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr := miniredis.RunT(t)
	initializers.Cache = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { initializers.Cache = nil })
	return mr
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.POST("/auth/signup", Signup)
	router.POST("/auth/login", Login)

	router.GET("/product", GetProducts)
	router.GET("/product/:id", GetProduct)
	router.POST("/product", CreateProduct)
	router.PUT("/product/:id", UpdateProduct)
	router.DELETE("/product/:id", DeleteProduct)

	router.GET("/categories", GetCategories)
	router.POST("/categories", CreateCategory)

	router.POST("/order", middlewares.OptionalAuthenticate(), PlaceOrder)
	router.GET("/orders", middlewares.Authenticate(), GetMyOrders)
	admin := router.Group("/admin", middlewares.Authenticate(), middlewares.RequireAdmin())
	admin.GET("/orders", GetOrders)
	admin.POST("/orders", UpdateOrderStatus)

	router.POST("/payment/initialize", middlewares.OptionalAuthenticate(), InitializePayment)
	router.GET("/payment/verify", VerifyPayment)

	return router
}

func performRequest(router *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func adminToken(t *testing.T) string {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := generateJWT(models.User{Model: gorm.Model{ID: 1}, Email: "admin@footloft.store", Role: "admin"})
	if err != nil {
		t.Fatalf("Failed to generate admin token: %v", err)
	}
	return token
}

func checkoutRequest() models.PlaceOrderRequest {
	return models.PlaceOrderRequest{
		Amount: 900,
		Address: models.Address{
			FirstName: "Ada",
			LastName:  "Obi",
			Email:     "ada@example.com",
			Street:    "12 Marina Road",
			City:      "Lagos",
			State:     "Lagos",
			Zipcode:   "100001",
			Country:   "Nigeria",
			Phone:     "+2348000000000",
		},
		Items: []models.OrderItem{
			{ProductID: 1, Name: "Premium Leather Oxford Shoes", Size: "42", Quantity: 2, Price: 450},
		},
	}
}

func orderCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	if err := initializers.DB.Model(&models.Order{}).Count(&count).Error; err != nil {
		t.Fatalf("Failed to count orders: %v", err)
	}
	return count
}

// newPaystackStub stands in for the gateway. initStatus controls the
// initialize response; verifyStatus is the transaction status returned
// by verify.
func newPaystackStub(t *testing.T, initOK bool, verifyStatus string, orderID *uint) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/transaction/initialize", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Reference string         `json:"reference"`
			Metadata  map[string]any `json:"metadata"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if id, ok := body.Metadata["orderId"].(float64); ok && orderID != nil {
			*orderID = uint(id)
		}

		w.Header().Set("Content-Type", "application/json")
		if !initOK {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]any{"status": false, "message": "Invalid key"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"status":  true,
			"message": "Authorization URL created",
			"data": map[string]any{
				"authorization_url": "https://checkout.paystack.com/abc123",
				"access_code":       "abc123",
				"reference":         body.Reference,
			},
		})
	})
	mux.HandleFunc("/transaction/verify/", func(w http.ResponseWriter, r *http.Request) {
		var id uint
		if orderID != nil {
			id = *orderID
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"status":  true,
			"message": "Verification successful",
			"data": map[string]any{
				"status":   verifyStatus,
				"metadata": map[string]any{"orderId": id},
			},
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	t.Setenv("PAYSTACK_API_URL", server.URL)
	t.Setenv("PAYSTACK_SECRET_KEY", "sk_test_secret")
	return server
}
