package ledger

import (
	"strings"

	"github.com/chris/apexfx-session/pkg/models"
)

// Category is the human label of a transaction on receipts and activity lists.
type Category string

const (
	TradingProfit Category = "Trading Profit"
	TradingLoss   Category = "Trading Loss"
	Deposit       Category = "Deposit"
	Withdrawal    Category = "Withdrawal"
	Credit        Category = "Credit"
	Debit         Category = "Debit"
)

var keywordCategories = []struct {
	keyword  string
	category Category
}{
	{"profit", TradingProfit},
	{"loss", TradingLoss},
	{"deposit", Deposit},
	{"withdrawal", Withdrawal},
}

// Classify labels tx from keywords in its description, falling back to its type.
func Classify(tx models.Transaction) Category {
	desc := strings.ToLower(tx.Description)
	for _, kc := range keywordCategories {
		if strings.Contains(desc, kc.keyword) {
			return kc.category
		}
	}
	if tx.Type == models.CREDIT {
		return Credit
	}
	return Debit
}
