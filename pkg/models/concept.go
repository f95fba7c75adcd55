package models

// Concept is an independently priced storefront sharing the company account.
type Concept struct {
	ID             string  `json:"_id"`
	Name           string  `json:"name"`
	Comment        *string `json:"comment,omitempty"`
	Image          *Image  `json:"image,omitempty"`
	IsDeleted      bool    `json:"isDeleted"`
	IsDisabled     bool    `json:"isDisabled"`
	AdditionalData *string `json:"additionalData,omitempty"`
	Order          int64   `json:"order"`
	MainGroupID    string  `json:"mainGroupId"`
	MainTerminalID string  `json:"mainTerminalId"`

	// Runtime-only attachments resolved by separate calls; never part of
	// the concept payload itself.
	Terminals     []Terminal     `json:"-"`
	DeliveryTypes []DeliveryType `json:"-"`
}

// Terminal is a physical point of sale belonging to a concept.
type Terminal struct {
	ID        string  `json:"_id"`
	Address   string  `json:"address"`
	City      string  `json:"city"`
	Timezone  string  `json:"timezone"`
	Delivery  *string `json:"delivery,omitempty"`
	ConceptID string  `json:"conceptId"`
	Order     int64   `json:"order"`
	GroupID   string  `json:"groupId"`
	CompanyID string  `json:"companyId"`
}

// DeliveryType names a fulfillment flavor (courier, pickup, ...).
type DeliveryType struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// PaymentType names a settlement method accepted by a concept. Orders
// reference its id; no charging happens in this SDK.
type PaymentType struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	ConceptID string `json:"conceptId"`
}
