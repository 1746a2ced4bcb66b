//go:build integration

package tests

import (
	"context"
	"os"
	"testing"
	"time"

	"sui-arb-ops/internal/clients_api/sui"
)

// TestIntegration_Sui_BalanceAndLatestTx hits a live fullnode.
// PROFIT_ADDRESS selects the account, SUI_RPC_URL the node (mainnet by default).
func TestIntegration_Sui_BalanceAndLatestTx(t *testing.T) {
	address := os.Getenv("PROFIT_ADDRESS")
	if address == "" {
		t.Skip("PROFIT_ADDRESS is not set; cannot run Sui integration test")
	}
	rpcURL := os.Getenv("SUI_RPC_URL")
	if rpcURL == "" {
		rpcURL = sui.MainnetRPC
	}

	c := sui.NewClient(rpcURL, sui.Options{Timeout: 20 * time.Second})

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	t.Cleanup(cancel)

	balance, err := c.GetBalance(ctx, address, "")
	if err != nil {
		t.Fatalf("GetBalance failed: %v", err)
	}
	if balance.CoinType != sui.SuiCoinType {
		t.Fatalf("expected coin type %s, got %s", sui.SuiCoinType, balance.CoinType)
	}
	if _, err := balance.Total(); err != nil {
		t.Fatalf("totalBalance not numeric: %v", err)
	}

	digest, err := c.LatestIncomingDigest(ctx, address)
	if err == sui.ErrNoTransactions {
		t.Skip("address has no incoming transactions")
	}
	if err != nil {
		t.Fatalf("LatestIncomingDigest failed: %v", err)
	}
	if digest == "" {
		t.Fatalf("empty digest")
	}
}
