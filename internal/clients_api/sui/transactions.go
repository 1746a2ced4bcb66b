package sui

import (
	"context"
	"errors"
)

// ErrNoTransactions - query matched nothing
var ErrNoTransactions = errors.New("no transactions found")

// TransactionFilter - one of the filter variants accepted by suix_queryTransactionBlocks.
// Only the address filters are needed here.
type TransactionFilter struct {
	ToAddress   string `json:"ToAddress,omitempty"`
	FromAddress string `json:"FromAddress,omitempty"`
}

// TransactionQuery - first parameter of suix_queryTransactionBlocks
type TransactionQuery struct {
	Filter  TransactionFilter `json:"filter"`
	Options *ResponseOptions  `json:"options"`
}

// ResponseOptions selects which parts of each block the node returns
type ResponseOptions struct {
	ShowInput          bool `json:"showInput,omitempty"`
	ShowEffects        bool `json:"showEffects,omitempty"`
	ShowEvents         bool `json:"showEvents,omitempty"`
	ShowBalanceChanges bool `json:"showBalanceChanges,omitempty"`
}

type TransactionBlock struct {
	Digest      string `json:"digest"`
	TimestampMs string `json:"timestampMs,omitempty"`
	Checkpoint  string `json:"checkpoint,omitempty"`
}

// TransactionPage - paginated result
type TransactionPage struct {
	Data        []TransactionBlock `json:"data"`
	NextCursor  *string            `json:"nextCursor"`
	HasNextPage bool               `json:"hasNextPage"`
}

// QueryTransactionBlocks wraps suix_queryTransactionBlocks.
// Nil cursor starts from the newest (descending) or oldest block.
func (c *Client) QueryTransactionBlocks(ctx context.Context, query TransactionQuery, cursor *string, limit int, descending bool) (*TransactionPage, error) {
	var cursorParam interface{}
	if cursor != nil {
		cursorParam = *cursor
	}
	params := []interface{}{query, cursorParam, limit, descending}

	var page TransactionPage
	if err := c.Call(ctx, "suix_queryTransactionBlocks", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// LatestIncomingDigest returns the digest of the newest transaction sent to address
func (c *Client) LatestIncomingDigest(ctx context.Context, address string) (string, error) {
	page, err := c.QueryTransactionBlocks(ctx, TransactionQuery{
		Filter: TransactionFilter{ToAddress: address},
	}, nil, 1, true)
	if err != nil {
		return "", err
	}
	if len(page.Data) == 0 || page.Data[0].Digest == "" {
		return "", ErrNoTransactions
	}
	return page.Data[0].Digest, nil
}
