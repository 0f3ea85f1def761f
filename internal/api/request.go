package api

// Institution is the metadata the Link widget reports for the linked account.
// Only the display name is ever inspected.
type Institution struct {
	Name          string `json:"name"`
	InstitutionID string `json:"institution_id"`
}

// ExchangeTokenRequest is the payload the Link page posts after a successful
// widget session.
type ExchangeTokenRequest struct {
	PublicToken string      `json:"public_token"`
	Institution Institution `json:"institution"`
}
