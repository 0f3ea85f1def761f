package plaid

// Credentials is the client_id/secret pair every Plaid request carries in
// its body. The values are opaque; they are never inspected or transformed.
type Credentials struct {
	ClientID string `json:"client_id"`
	Secret   string `json:"secret"`
}

// LinkTokenUser identifies the Link session user. This is a single-operator
// setup tool, so the ID is a fixed synthetic value.
type LinkTokenUser struct {
	ClientUserID string `json:"client_user_id"`
}

// LinkTokenCreateRequest is the payload for POST /link/token/create.
type LinkTokenCreateRequest struct {
	Credentials
	ClientName   string        `json:"client_name"`
	Language     string        `json:"language"`
	CountryCodes []string      `json:"country_codes"`
	User         LinkTokenUser `json:"user"`
	Products     []string      `json:"products"`
}

// LinkTokenCreateResponse is Plaid's response to /link/token/create.
type LinkTokenCreateResponse struct {
	LinkToken  string `json:"link_token"`
	Expiration string `json:"expiration"`
	RequestID  string `json:"request_id"`
}

// PublicTokenExchangeRequest is the payload for POST /item/public_token/exchange.
type PublicTokenExchangeRequest struct {
	Credentials
	PublicToken string `json:"public_token"`
}

// PublicTokenExchangeResponse is Plaid's response to /item/public_token/exchange.
type PublicTokenExchangeResponse struct {
	AccessToken string `json:"access_token"`
	ItemID      string `json:"item_id"`
	RequestID   string `json:"request_id"`
}

// ErrorResponse is Plaid's standard error body.
type ErrorResponse struct {
	ErrorType      string `json:"error_type"`
	ErrorCode      string `json:"error_code"`
	ErrorMessage   string `json:"error_message"`
	DisplayMessage string `json:"display_message"`
	RequestID      string `json:"request_id"`
}
