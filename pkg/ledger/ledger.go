// Package ledger holds the pure arithmetic over a user's transaction log:
// totals, P&L and the balance invariant. Nothing here mutates its input.
package ledger

import (
	"errors"
	"fmt"

	"github.com/chris/apexfx-session/pkg/models"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ErrBalanceDrift is returned when a stored balance no longer matches the
// balance derived from the transaction log.
var ErrBalanceDrift = errors.New("balance does not match transaction log")

// Totals summarises a transaction log.
type Totals struct {
	TotalCredits decimal.Decimal `json:"total_credits"`
	TotalDebits  decimal.Decimal `json:"total_debits"`
	PendingCount int             `json:"pending_count"`
}

// PnL is the profit and loss relative to the initial balance.
type PnL struct {
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
}

// ComputeTotals sums successful credits and debits and counts pending entries.
// Denied and pending entries never contribute to the sums.
func ComputeTotals(txs []models.Transaction) Totals {
	totals := Totals{TotalCredits: decimal.Zero, TotalDebits: decimal.Zero}
	for _, tx := range txs {
		switch tx.Status {
		case models.PENDING:
			totals.PendingCount++
		case models.SUCCESS:
			if tx.Type == models.CREDIT {
				totals.TotalCredits = totals.TotalCredits.Add(tx.Amount)
			} else if tx.Type == models.DEBIT {
				totals.TotalDebits = totals.TotalDebits.Add(tx.Amount)
			}
		}
	}
	return totals
}

// ComputePnL returns balance minus initial and that difference as a
// percentage of initial. A zero initial balance yields a zero percentage.
func ComputePnL(balance, initial decimal.Decimal) PnL {
	amount := balance.Sub(initial)
	if initial.IsZero() {
		return PnL{Amount: amount, Percentage: decimal.Zero}
	}
	return PnL{Amount: amount, Percentage: amount.Div(initial).Mul(hundred)}
}

// SignedEffect is the contribution of tx to the balance: +amount for a
// successful credit, -amount for a successful debit, zero otherwise.
func SignedEffect(tx models.Transaction) decimal.Decimal {
	if tx.Status != models.SUCCESS {
		return decimal.Zero
	}
	switch tx.Type {
	case models.CREDIT:
		return tx.Amount
	case models.DEBIT:
		return tx.Amount.Neg()
	}
	return decimal.Zero
}

// DeriveBalance recomputes the balance from the initial balance and the log.
func DeriveBalance(initial decimal.Decimal, txs []models.Transaction) decimal.Decimal {
	balance := initial
	for _, tx := range txs {
		balance = balance.Add(SignedEffect(tx))
	}
	return balance
}

// VerifyBalance checks the stored balance of u against its transaction log.
func VerifyBalance(u *models.User) error {
	derived := DeriveBalance(u.InitialBalance, u.Transactions)
	if !derived.Equal(u.Balance) {
		return fmt.Errorf("%w: user %s stored %s, derived %s", ErrBalanceDrift, u.Id, u.Balance, derived)
	}
	return nil
}
