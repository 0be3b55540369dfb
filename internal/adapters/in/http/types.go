package http

import "time"

// Error is the JSON body returned on every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// OrderLineRequest is one requested medicine in an order placement.
type OrderLineRequest struct {
	MedicineID string `json:"medicineId"`
	Quantity   int    `json:"quantity"`
}

// AddressRequest is the delivery destination of an order placement.
type AddressRequest struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// PlaceOrderRequest is the body of POST /api/v1/orders. The patient identity
// comes from the actor headers, not the body.
type PlaceOrderRequest struct {
	PharmacyID      string             `json:"pharmacyId"`
	Lines           []OrderLineRequest `json:"lines"`
	Address         AddressRequest     `json:"address"`
	PaymentMethod   string             `json:"paymentMethod"`
	PrescriptionRef string             `json:"prescriptionRef"`
}

// PlaceOrderResponse returns the identity of the placed order.
type PlaceOrderResponse struct {
	OrderID string `json:"orderId"`
}

// TransitionRequest is the body of PUT /api/v1/orders/:id/status.
type TransitionRequest struct {
	Status string `json:"status"`
	Note   string `json:"note,omitempty"`
}

// AssignRequest is the body of PUT /api/v1/orders/:id/assign.
type AssignRequest struct {
	CourierID string `json:"courierId"`
}

// RespondRequest is the body of PUT /api/v1/orders/:id/respond.
type RespondRequest struct {
	Accept bool   `json:"accept"`
	Note   string `json:"note,omitempty"`
}

// MedicineRequest is the body of medicine listing writes. Available is
// ignored on creation; new listings always start available.
type MedicineRequest struct {
	MedicineID  string    `json:"medicineId"`
	Name        string    `json:"name"`
	GenericName string    `json:"genericName,omitempty"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Discount    float64   `json:"discount"`
	Available   bool      `json:"available"`
	ExpiryDate  time.Time `json:"expiryDate"`
	BatchNumber string    `json:"batchNumber,omitempty"`
}

// OrderSummaryResponse is one row of GET /api/v1/orders.
type OrderSummaryResponse struct {
	ID          string    `json:"id"`
	OrderNumber string    `json:"orderNumber"`
	Status      string    `json:"status"`
	Total       float64   `json:"total"`
	CourierID   *string   `json:"courierId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CourierResponse is one row of GET /api/v1/couriers.
type CourierResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	IsBusy bool   `json:"isBusy"`
}

// StockResponse is the body of a stock lookup.
type StockResponse struct {
	MedicineID string  `json:"medicineId"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Discount   float64 `json:"discount"`
	FinalPrice float64 `json:"finalPrice"`
	Stock      int     `json:"stock"`
	Available  bool    `json:"available"`
}

// ShortItemResponse names one medicine whose stock cannot cover an order.
type ShortItemResponse struct {
	MedicineID string `json:"medicineId"`
	Name       string `json:"name"`
	Required   int    `json:"required"`
	Available  int    `json:"available"`
}

// InsufficientStockResponse is the 400 body for orders the stock cannot cover.
type InsufficientStockResponse struct {
	Code    int                 `json:"code"`
	Message string              `json:"message"`
	Items   []ShortItemResponse `json:"items"`
}
