package models

import "time"

// Order is the caller-facing order description assembled by the
// application before submission.
type Order struct {
	Concept         Concept
	Terminal        *Terminal
	DeliveryType    DeliveryType
	PaymentType     PaymentType
	PersonsCount    *int
	DeliveryTime    *time.Time
	Products        []Product
	Address         *Address
	WithdrawBonuses float32
	Comment         string
	Change          float32
}

// OrderRequest is the wire payload for order submission.
type OrderRequest struct {
	ConceptID       string           `json:"conceptId" validate:"required"`
	CompanyID       string           `json:"companyId" validate:"required"`
	TerminalID      *string          `json:"terminalId,omitempty"`
	DeliveryTypeID  string           `json:"deliveryTypeId" validate:"required"`
	PaymentTypeID   string           `json:"paymentTypeId" validate:"required"`
	PersonsCount    int              `json:"personsCount"`
	DeliveryTime    *string          `json:"deliveryTime,omitempty"`
	SourceID        string           `json:"sourceId"`
	WithdrawBonuses float32          `json:"withdrawBonuses"`
	Comment         string           `json:"comment"`
	Change          float32          `json:"change"`
	Address         *OrderAddress    `json:"address,omitempty"`
	Products        []OrderProduct   `json:"products" validate:"required,min=1,dive"`
}

type OrderAddress struct {
	City     string `json:"city"`
	Street   string `json:"street"`
	Home     string `json:"home"`
	Flat     *int64 `json:"flat,omitempty"`
	Floor    *int64 `json:"floor,omitempty"`
	Entrance *int64 `json:"entrance,omitempty"`
}

type OrderProduct struct {
	Code      string          `json:"code" validate:"required"`
	Amount    float32         `json:"amount" validate:"gt=0"`
	Modifiers []OrderModifier `json:"modifiers"`
}

type OrderModifier struct {
	ID     string  `json:"id"`
	Amount float32 `json:"amount"`
}

type OrderResponse struct {
	Message string `json:"message"`
}

// UserOrder is an order from the customer's history.
type UserOrder struct {
	ID           string    `json:"_id"`
	ConceptID    string    `json:"conceptId"`
	TerminalID   *string   `json:"terminalId,omitempty"`
	Status       *string   `json:"status,omitempty"`
	Total        float32   `json:"total"`
	CreatedAt    *string   `json:"createdAt,omitempty"`
	Products     []Product `json:"products,omitempty"`
}
