package models

// AuthRequest carries the normalized phone and, on the token step, the
// one-time code.
type AuthRequest struct {
	Phone int64   `json:"phone"`
	Code  *string `json:"code,omitempty"`
}

type AuthResponse struct {
	AccessToken *string `json:"access_token,omitempty"`
	TokenType   *string `json:"token_type,omitempty"`
	Detail      *string `json:"detail,omitempty"`
}

type CodeResponse struct {
	Message      string `json:"message"`
	IsRegistered bool   `json:"isRegistered"`
}

type SignupRequest struct {
	Phone     int64   `json:"phone"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     *string `json:"email,omitempty"`
	Sex       *string `json:"sex,omitempty"`
	DOB       *string `json:"dob,omitempty"`
}

type SignupResponse struct {
	Message *string `json:"message,omitempty"`
	Detail  *string `json:"detail,omitempty"`
}
