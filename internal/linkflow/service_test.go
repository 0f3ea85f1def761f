package linkflow

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tf-anguskong/homelab-monitor/internal/plaid"
)

type mockPlaid struct {
	createFn   func(ctx context.Context, clientName, userID string, products []string) (*plaid.LinkTokenCreateResponse, error)
	exchangeFn func(ctx context.Context, publicToken string) (*plaid.PublicTokenExchangeResponse, error)
}

func (m *mockPlaid) CreateLinkToken(ctx context.Context, clientName, userID string, products []string) (*plaid.LinkTokenCreateResponse, error) {
	if m.createFn != nil {
		return m.createFn(ctx, clientName, userID, products)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockPlaid) ExchangePublicToken(ctx context.Context, publicToken string) (*plaid.PublicTokenExchangeResponse, error) {
	if m.exchangeFn != nil {
		return m.exchangeFn(ctx, publicToken)
	}
	return nil, fmt.Errorf("not implemented")
}

func TestCreateLinkToken_UsesFixedIdentity(t *testing.T) {
	var gotName, gotUser string
	var gotProducts []string
	m := &mockPlaid{
		createFn: func(_ context.Context, clientName, userID string, products []string) (*plaid.LinkTokenCreateResponse, error) {
			gotName, gotUser, gotProducts = clientName, userID, products
			return &plaid.LinkTokenCreateResponse{LinkToken: "link-abc", RequestID: "req-1"}, nil
		},
	}
	svc := NewService(zap.NewNop(), m, &bytes.Buffer{})

	token, err := svc.CreateLinkToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "link-abc", token)
	assert.Equal(t, "Homelab Finance Monitor", gotName)
	assert.Equal(t, "homelab-user", gotUser)
	assert.Equal(t, []string{"transactions", "investments"}, gotProducts)
}

func TestCreateLinkToken_PropagatesError(t *testing.T) {
	m := &mockPlaid{
		createFn: func(context.Context, string, string, []string) (*plaid.LinkTokenCreateResponse, error) {
			return nil, fmt.Errorf("plaid returned 400: INVALID_API_KEYS")
		},
	}
	svc := NewService(zap.NewNop(), m, &bytes.Buffer{})

	_, err := svc.CreateLinkToken(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_API_KEYS")
}

func TestExchangePublicToken_PrintsOperatorBlock(t *testing.T) {
	m := &mockPlaid{
		exchangeFn: func(_ context.Context, publicToken string) (*plaid.PublicTokenExchangeResponse, error) {
			assert.Equal(t, "public-xyz", publicToken)
			return &plaid.PublicTokenExchangeResponse{
				AccessToken: "access-production-123",
				ItemID:      "item-1",
			}, nil
		},
	}
	var out bytes.Buffer
	svc := NewService(zap.NewNop(), m, &out)

	token, err := svc.ExchangePublicToken(context.Background(), "public-xyz", "Vanguard Group")
	require.NoError(t, err)
	assert.Equal(t, "access-production-123", token)

	printed := out.String()
	assert.Contains(t, printed, "Institution: Vanguard Group")
	assert.Contains(t, printed, "Access token: access-production-123")
	assert.Contains(t, printed, "PLAID_ACCESS_TOKEN_<n>=access-production-123")
	assert.Contains(t, printed, "PLAID_INSTITUTION_<n>=vanguard_group")
}

func TestExchangePublicToken_UnknownInstitution(t *testing.T) {
	m := &mockPlaid{
		exchangeFn: func(context.Context, string) (*plaid.PublicTokenExchangeResponse, error) {
			return &plaid.PublicTokenExchangeResponse{AccessToken: "access-1"}, nil
		},
	}
	var out bytes.Buffer
	svc := NewService(zap.NewNop(), m, &out)

	_, err := svc.ExchangePublicToken(context.Background(), "public-xyz", "")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Institution: unknown")
}

func TestExchangePublicToken_ErrorPrintsNothing(t *testing.T) {
	m := &mockPlaid{
		exchangeFn: func(context.Context, string) (*plaid.PublicTokenExchangeResponse, error) {
			return nil, fmt.Errorf("plaid returned 500")
		},
	}
	var out bytes.Buffer
	svc := NewService(zap.NewNop(), m, &out)

	_, err := svc.ExchangePublicToken(context.Background(), "public-xyz", "Chase")
	require.Error(t, err)
	assert.Empty(t, out.String(), "no operator output on failure")
}
