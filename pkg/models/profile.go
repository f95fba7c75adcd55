package models

type Profile struct {
	ID               string   `json:"_id"`
	FirstName        string   `json:"firstName"`
	LastName         string   `json:"lastName"`
	Phone            int64    `json:"phone"`
	Email            *string  `json:"email,omitempty"`
	Sex              *string  `json:"sex,omitempty"`
	DOB              *string  `json:"dob,omitempty"`
	Card             int64    `json:"card"`
	ExternalID       *string  `json:"externalId,omitempty"`
	Wallet           Wallet   `json:"wallet"`
	FavoriteProducts []string `json:"favoriteProducts,omitempty"`
	Balances         Balances `json:"balances"`
}

type Wallet struct {
	Auth *string `json:"auth,omitempty"`
	Card *string `json:"card,omitempty"`
}

type Balances struct {
	Total      float32   `json:"total"`
	Categories []string  `json:"categories"`
	Balances   []Balance `json:"balances"`
}

type Balance struct {
	Balance float32 `json:"balance"`
	Wallet  string  `json:"wallet"`
}
