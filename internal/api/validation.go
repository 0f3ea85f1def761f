package api

import (
	"fmt"
	"strings"
)

func (r ExchangeTokenRequest) Validate() error {
	if strings.TrimSpace(r.PublicToken) == "" {
		return fmt.Errorf("public_token is required")
	}
	return nil
}
