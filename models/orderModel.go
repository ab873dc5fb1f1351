package models

import "gorm.io/gorm"

// Payment methods accepted at checkout.
const (
	PaymentMethodPaystack = "Paystack"
	PaymentMethodCOD      = "COD"
)

// Fulfilment statuses an admin can set. Any status may be set from any
// other; there is no forward-only guard.
const (
	StatusPending        = "Pending"
	StatusOrderPlaced    = "Order Placed"
	StatusPacking        = "Packing"
	StatusShipped        = "Shipped"
	StatusOutForDelivery = "Out for delivery"
	StatusDelivered      = "Delivered"
)

// OrderStatuses is the fixed vocabulary exposed to the admin console.
var OrderStatuses = []string{
	StatusOrderPlaced,
	StatusPacking,
	StatusShipped,
	StatusOutForDelivery,
	StatusDelivered,
}

type Address struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Street    string `json:"street" binding:"required"`
	City      string `json:"city" binding:"required"`
	State     string `json:"state" binding:"required"`
	Zipcode   string `json:"zipcode" binding:"required"`
	Country   string `json:"country" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
}

type Order struct {
	gorm.Model
	UserID            *uint       `json:"userId"`
	Amount            float64     `json:"amount"`
	Address           Address     `json:"address" gorm:"embedded"`
	PaymentMethod     string      `json:"paymentMethod"`
	PaymentStatus     bool        `json:"paymentStatus"`
	Status            string      `json:"status"`
	PaystackReference string      `json:"paystackReference,omitempty"`
	Items             []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem snapshots name and price at order-creation time. Snapshots
// are never recomputed from the live catalog, so historical orders stay
// stable against catalog edits and product deletion.
type OrderItem struct {
	gorm.Model
	OrderID   uint    `json:"orderId"`
	ProductID uint    `json:"productId" binding:"required"`
	Name      string  `json:"name"`
	Size      string  `json:"size" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
	Price     float64 `json:"price" binding:"required,gt=0"`
}

// PlaceOrderRequest is the checkout payload shared by the gateway and
// cash-on-delivery paths.
type PlaceOrderRequest struct {
	Amount  float64     `json:"amount" binding:"required,gt=0"`
	Address Address     `json:"address" binding:"required"`
	Items   []OrderItem `json:"items" binding:"required,min=1,dive"`
}
