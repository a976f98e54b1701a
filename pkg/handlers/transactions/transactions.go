package transactions

import (
	"encoding/json"
	"net/http"

	"github.com/chris/apexfx-session/pkg/api"
	"github.com/chris/apexfx-session/pkg/handlers/respond"
	"github.com/chris/apexfx-session/pkg/ledger"
	"github.com/chris/apexfx-session/pkg/mapping"
	"github.com/chris/apexfx-session/pkg/models"
	"github.com/chris/apexfx-session/pkg/session"
)

// Store is the part of session.Store the transaction handlers depend on.
type Store interface {
	Mode() models.Mode
	CurrentUser() (*models.User, bool)
	AppendTransaction(newTx models.NewTransaction) (models.Transaction, error)
}

// Make sure we conform to the interface
var _ Store = (*session.Store)(nil)

// TransactionsHandler holds the dependencies for transaction-related handlers.
type TransactionsHandler struct {
	Store Store
}

// NewTransactionsHandler creates a new TransactionsHandler.
func NewTransactionsHandler(store Store) *TransactionsHandler {
	return &TransactionsHandler{Store: store}
}

// currentUser returns the signed-in ordinary user. Admin mode does not
// qualify: these endpoints back the user views only.
func (h *TransactionsHandler) currentUser(w http.ResponseWriter) (*models.User, bool) {
	if h.Store.Mode() != models.USER {
		http.Error(w, "Not signed in", http.StatusUnauthorized)
		return nil, false
	}
	user, ok := h.Store.CurrentUser()
	if !ok {
		http.Error(w, "Not signed in", http.StatusUnauthorized)
		return nil, false
	}
	return user, true
}

// ListTransactions returns one filtered page of the current user's log.
func (h *TransactionsHandler) ListTransactions(w http.ResponseWriter, r *http.Request, params api.ListTransactionsParams) {
	user, ok := h.currentUser(w)
	if !ok {
		return
	}

	page := ledger.Filter(user.Transactions, mapping.ToDomainQuery(&params))
	respond.JSON(w, http.StatusOK, mapping.ToApiTransactionPage(page))
}

// CreateTransaction appends a deposit or withdrawal request to the current
// user's log. Requests always start pending whatever status the body names;
// only an administrator can settle them.
func (h *TransactionsHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.currentUser(w); !ok {
		return
	}

	var newTx api.NewTransaction
	if err := json.NewDecoder(r.Body).Decode(&newTx); err != nil {
		respond.BadRequest(w, err)
		return
	}

	domain := mapping.ToDomainNewTransaction(&newTx)
	domain.Status = models.PENDING

	created, err := h.Store.AppendTransaction(domain)
	if err != nil {
		respond.Error(w, err, "create transaction")
		return
	}

	respond.JSON(w, http.StatusCreated, mapping.ToApiTransaction(&created))
}

// GetTransactionReceipt renders a receipt for one of the current user's transactions.
func (h *TransactionsHandler) GetTransactionReceipt(w http.ResponseWriter, r *http.Request, transactionId string) {
	user, ok := h.currentUser(w)
	if !ok {
		return
	}

	idx := user.FindTransaction(transactionId)
	if idx < 0 {
		http.Error(w, "Transaction not found", http.StatusNotFound)
		return
	}
	respond.JSON(w, http.StatusOK, mapping.ToApiReceipt(ledger.NewReceipt(user.Transactions[idx], user.Balance)))
}

// GetSummary reports balance, totals and profit and loss for the current user.
func (h *TransactionsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w)
	if !ok {
		return
	}

	totals := ledger.ComputeTotals(user.Transactions)
	pnl := ledger.ComputePnL(user.Balance, user.InitialBalance)
	respond.JSON(w, http.StatusOK, api.Summary{
		Balance:        user.Balance,
		BalanceDisplay: ledger.FormatUSD(user.Balance),
		InitialBalance: user.InitialBalance,
		TotalCredits:   totals.TotalCredits,
		TotalDebits:    totals.TotalDebits,
		PendingCount:   totals.PendingCount,
		PnL:            pnl.Amount,
		PnLPercentage:  pnl.Percentage,
	})
}
