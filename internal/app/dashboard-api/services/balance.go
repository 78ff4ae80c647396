package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/types"
)

var (
	ErrEmptyAddress       = errors.New("address is required")
	ErrLookupInProgress   = errors.New("balance lookup already in progress")
	ErrAllProvidersFailed = errors.New("all balance providers failed")
)

// one TON is 1e9 nanotons
var nanotonsPerTon = decimal.New(1, 9)

// BalanceService looks wallet balances up through the explorer providers in
// order and keeps the last state of every row in memory.
type BalanceService struct {
	providers []BalanceProvider
	prices    PriceClient
	tokenId   string
	currency  string

	mu   sync.Mutex
	rows map[string]types.WalletBalance
}

// NewBalanceService accepts a nil PriceClient, in which case no fiat value is computed.
func NewBalanceService(providers []BalanceProvider, prices PriceClient, tokenId, currency string) *BalanceService {
	return &BalanceService{
		providers: providers,
		prices:    prices,
		tokenId:   tokenId,
		currency:  currency,
		rows:      make(map[string]types.WalletBalance),
	}
}

// Lookup never fails the caller: every problem ends up in the Error field of the row.
func (s *BalanceService) Lookup(ctx context.Context, address string) types.WalletBalance {
	address = strings.TrimSpace(address)
	if address == "" {
		return types.WalletBalance{Error: ErrEmptyAddress.Error()}
	}

	friendly := ToFriendlyAddress(address)

	s.mu.Lock()
	if row, ok := s.rows[friendly]; ok && row.Loading {
		s.mu.Unlock()
		row.Error = ErrLookupInProgress.Error()
		return row
	}
	s.rows[friendly] = types.WalletBalance{Address: address, FriendlyAddress: friendly, Loading: true}
	s.mu.Unlock()

	row := s.lookup(ctx, address, friendly)

	s.mu.Lock()
	s.rows[friendly] = row
	s.mu.Unlock()

	return row
}

func (s *BalanceService) lookup(ctx context.Context, address, friendly string) types.WalletBalance {
	row := types.WalletBalance{Address: address, FriendlyAddress: friendly}

	var lastErr error
	for _, provider := range s.providers {
		nanotons, err := provider.GetBalance(ctx, friendly)
		if err != nil {
			lastErr = err
			continue
		}

		balance := nanotons.Div(nanotonsPerTon)
		row.Balance = &balance
		row.Provider = provider.Name()
		break
	}

	if row.Balance == nil {
		if lastErr == nil {
			lastErr = errors.New("no providers configured")
		}
		row.Error = fmt.Errorf("%w: %s", ErrAllProvidersFailed, lastErr).Error()
		log.Error().Msgf("balance lookup for %s failed: %s", friendly, row.Error)
		return row
	}

	if s.prices == nil {
		return row
	}

	price, err := s.prices.GetTokenPrice(ctx, s.tokenId, s.currency)
	if err != nil {
		log.Warn().Msgf("could not get %s price in %s: %s", s.tokenId, s.currency, err)
		return row
	}

	fiat := row.Balance.Mul(price).Round(2)
	row.FiatValue = &fiat
	row.Currency = s.currency

	return row
}

// State returns the last known row for address, in any accepted encoding.
func (s *BalanceService) State(address string) (types.WalletBalance, bool) {
	friendly := ToFriendlyAddress(strings.TrimSpace(address))

	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.rows[friendly]
	return row, ok
}
