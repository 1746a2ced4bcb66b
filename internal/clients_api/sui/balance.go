package sui

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// SuiCoinType - native coin, used by the node when no coin type is given
const SuiCoinType = "0x2::sui::SUI"

// Balance - suix_getBalance result
type Balance struct {
	CoinType        string `json:"coinType"`
	CoinObjectCount int    `json:"coinObjectCount"`
	TotalBalance    string `json:"totalBalance"`
}

// Total parses TotalBalance (u128 as decimal string)
func (b *Balance) Total() (decimal.Decimal, error) {
	total, err := decimal.NewFromString(b.TotalBalance)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid totalBalance %q: %w", b.TotalBalance, err)
	}
	return total, nil
}

// GetBalance returns the total balance of coinType owned by owner.
// Empty coinType means SUI.
func (c *Client) GetBalance(ctx context.Context, owner, coinType string) (*Balance, error) {
	params := []interface{}{owner}
	if coinType != "" {
		params = append(params, coinType)
	}

	var balance Balance
	if err := c.Call(ctx, "suix_getBalance", params, &balance); err != nil {
		return nil, err
	}
	if balance.TotalBalance == "" {
		return nil, fmt.Errorf("suix_getBalance: %w: missing totalBalance", ErrUnexpectedResponse)
	}
	return &balance, nil
}
