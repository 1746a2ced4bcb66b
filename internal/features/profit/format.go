package profit

import (
	"fmt"
	"strings"

	"sui-arb-ops/internal/clients_api/telegram"

	"github.com/shopspring/decimal"
)

// SuiDecimals - 1 SUI = 10^9 MIST
const SuiDecimals = 9

// DefaultExplorerTxURL - digest is appended
const DefaultExplorerTxURL = "https://suivision.xyz/txblock/"

// Alert is everything a large-profit message shows
type Alert struct {
	Previous decimal.Decimal // MIST
	Current  decimal.Decimal // MIST
	TxLink   string
}

// FormatMIST renders a MIST amount in SUI with exactly 9 decimals
func FormatMIST(amount decimal.Decimal) string {
	return amount.Shift(-SuiDecimals).StringFixed(SuiDecimals)
}

// TxLink joins the explorer prefix and the digest
func TxLink(explorerTxURL, digest string) string {
	if explorerTxURL == "" {
		explorerTxURL = DefaultExplorerTxURL
	}
	if !strings.HasSuffix(explorerTxURL, "/") {
		explorerTxURL += "/"
	}
	return explorerTxURL + digest
}

// FormatAlert builds the Telegram Markdown message
func FormatAlert(alert Alert) string {
	link := telegram.EscapeMarkdown(alert.TxLink)
	profit := alert.Current.Sub(alert.Previous)

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("*Monitor Large Profit tx*: [%s](%s)\n", link, link))
	msg.WriteString(fmt.Sprintf("*Previous Balance*: `%s`\n", FormatMIST(alert.Previous)))
	msg.WriteString(fmt.Sprintf("*Current Balance*: `%s`\n", FormatMIST(alert.Current)))
	msg.WriteString(fmt.Sprintf("*Profit*: `%s`", FormatMIST(profit)))
	return msg.String()
}
