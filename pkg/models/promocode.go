package models

// PromocodeFailure explains why a promocode was not applied.
type PromocodeFailure string

const (
	PromocodeNotFound    PromocodeFailure = "not_found"
	PromocodeMinOrderSum PromocodeFailure = "min_order_sum"
	PromocodeOutdated    PromocodeFailure = "outdated"
)

// Promocode is the resolved result of a promocode check: either a gift
// product or a failure reason.
type Promocode struct {
	Product     *Product
	MinOrderSum *float32
	Reason      *PromocodeFailure
}

type PromocodeRequest struct {
	Promocode string             `json:"promocode"`
	ConceptID string             `json:"conceptId"`
	Products  []PromocodeProduct `json:"products"`
}

type PromocodeProduct struct {
	Code      string              `json:"code"`
	Amount    float32             `json:"amount"`
	Modifiers []PromocodeModifier `json:"modifiers"`
}

type PromocodeModifier struct {
	ID     string  `json:"id"`
	Amount float32 `json:"amount"`
}

type PromocodeResponse struct {
	Product *Product `json:"product,omitempty"`
	Err     *string  `json:"err,omitempty"`
	Detail  *string  `json:"detail,omitempty"`
	MinSum  *float32 `json:"minSum,omitempty"`
}
