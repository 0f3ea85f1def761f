package linkflow

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/tf-anguskong/homelab-monitor/internal/plaid"
	"github.com/tf-anguskong/homelab-monitor/pkg/utils"
)

const (
	// Fixed Link session identity; the setup tool has exactly one operator.
	clientName = "Homelab Finance Monitor"
	userID     = "homelab-user"
)

// The collector needs both transaction and holdings data from every linked
// institution.
var products = []string{"transactions", "investments"}

// PlaidAPI is the subset of the Plaid client the link flow needs.
type PlaidAPI interface {
	CreateLinkToken(ctx context.Context, clientName, userID string, products []string) (*plaid.LinkTokenCreateResponse, error)
	ExchangePublicToken(ctx context.Context, publicToken string) (*plaid.PublicTokenExchangeResponse, error)
}

// Service sits between the HTTP handlers and the Plaid client. On a
// successful exchange it writes the access token block to out (stdout in
// production) for the operator to copy into .env.
type Service struct {
	logger *zap.Logger
	client PlaidAPI
	out    io.Writer
}

// NewService creates a link-flow service writing operator output to out.
func NewService(logger *zap.Logger, client PlaidAPI, out io.Writer) *Service {
	return &Service{
		logger: logger,
		client: client,
		out:    out,
	}
}

// CreateLinkToken requests a new Link token from Plaid.
func (s *Service) CreateLinkToken(ctx context.Context) (string, error) {
	resp, err := s.client.CreateLinkToken(ctx, clientName, userID, products)
	if err != nil {
		return "", err
	}
	s.logger.Info("linkflow.link_token_created",
		zap.String("request_id", resp.RequestID))
	return resp.LinkToken, nil
}

// ExchangePublicToken exchanges a Link public token for a long-lived access
// token and prints it, with ready-to-paste .env lines, for the operator.
// The token is returned untransformed; logs only ever see a masked copy.
func (s *Service) ExchangePublicToken(ctx context.Context, publicToken, institutionName string) (string, error) {
	if institutionName == "" {
		institutionName = "unknown"
	}

	resp, err := s.client.ExchangePublicToken(ctx, publicToken)
	if err != nil {
		return "", err
	}

	s.logger.Info("linkflow.token_exchanged",
		zap.String("institution", institutionName),
		zap.String("access_token", utils.MaskToken(resp.AccessToken)),
		zap.String("item_id", resp.ItemID),
		zap.String("request_id", resp.RequestID))

	divider := strings.Repeat("=", 60)
	fmt.Fprintf(s.out, "\n%s\n", divider)
	fmt.Fprintf(s.out, "Institution: %s\n", institutionName)
	fmt.Fprintf(s.out, "Access token: %s\n\n", resp.AccessToken)
	fmt.Fprintln(s.out, "Add to your .env file:")
	fmt.Fprintf(s.out, "  PLAID_ACCESS_TOKEN_<n>=%s\n", resp.AccessToken)
	fmt.Fprintf(s.out, "  PLAID_INSTITUTION_<n>=%s\n", envKey(institutionName))
	fmt.Fprintf(s.out, "%s\n\n", divider)

	return resp.AccessToken, nil
}

// envKey normalizes an institution display name into an .env-friendly value.
func envKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}
