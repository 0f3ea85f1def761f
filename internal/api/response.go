package api

// LinkTokenResponse carries the Link token back to the browser page.
type LinkTokenResponse struct {
	LinkToken string `json:"link_token"`
}

// ExchangeResponse signals a completed exchange; the access token itself is
// printed to the console, never returned to the browser.
type ExchangeResponse struct {
	Success bool `json:"success"`
}
