package ledger

import (
	"github.com/Rhymond/go-money"
	"github.com/chris/apexfx-session/pkg/models"
	"github.com/shopspring/decimal"
)

// Receipt is the printable view of a single transaction.
type Receipt struct {
	TransactionID string                   `json:"transaction_id"`
	Label         Category                 `json:"label"`
	Type          models.TransactionType   `json:"type"`
	Status        models.TransactionStatus `json:"status"`
	Description   string                   `json:"description"`
	Amount        string                   `json:"amount"`
	Balance       string                   `json:"balance"`
	Date          string                   `json:"date"`
	Time          string                   `json:"time"`
}

// NewReceipt renders tx against the owner's current balance.
func NewReceipt(tx models.Transaction, balance decimal.Decimal) Receipt {
	sign := "+"
	if tx.Type == models.DEBIT {
		sign = "-"
	}
	return Receipt{
		TransactionID: tx.Id,
		Label:         Classify(tx),
		Type:          tx.Type,
		Status:        tx.Status,
		Description:   tx.Description,
		Amount:        sign + FormatUSD(tx.Amount),
		Balance:       FormatUSD(balance),
		Date:          tx.Timestamp.Format("January 2, 2006"),
		Time:          tx.Timestamp.Format("03:04:05 PM"),
	}
}

// FormatUSD formats a major-unit amount as US dollars, e.g. $1,250.00.
func FormatUSD(amount decimal.Decimal) string {
	cur := money.GetCurrency(money.USD)
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return money.New(minor.IntPart(), money.USD).Display()
}
