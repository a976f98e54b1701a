package mapping

import (
	"github.com/chris/apexfx-session/pkg/access"
	"github.com/chris/apexfx-session/pkg/api"
	"github.com/chris/apexfx-session/pkg/ledger"
	"github.com/chris/apexfx-session/pkg/models"
	"github.com/chris/apexfx-session/pkg/session"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ToApiTransaction converts a domain Transaction model to an API Transaction model.
func ToApiTransaction(tx *models.Transaction) *api.Transaction {
	return &api.Transaction{
		Id:          tx.Id,
		Amount:      tx.Amount,
		Type:        api.TransactionType(tx.Type),
		Status:      api.TransactionStatus(tx.Status),
		Description: tx.Description,
		Category:    string(ledger.Classify(*tx)),
		Timestamp:   tx.Timestamp,
	}
}

// ToApiTransactions converts a slice of domain transactions.
func ToApiTransactions(txs []models.Transaction) []api.Transaction {
	out := make([]api.Transaction, len(txs))
	for i := range txs {
		out[i] = *ToApiTransaction(&txs[i])
	}
	return out
}

// ToDomainNewTransaction converts an API NewTransaction model to a domain NewTransaction.
// A missing status is left empty so the store applies its default.
func ToDomainNewTransaction(newTx *api.NewTransaction) models.NewTransaction {
	domain := models.NewTransaction{
		Amount:      newTx.Amount,
		Type:        models.TransactionType(newTx.Type),
		Description: newTx.Description,
	}
	if newTx.Status != nil {
		domain.Status = models.TransactionStatus(*newTx.Status)
	}
	return domain
}

// ToApiUser converts a domain User model to an API User model.
func ToApiUser(u *models.User) *api.User {
	return &api.User{
		Id:             u.Id,
		Email:          openapi_types.Email(u.Email),
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Avatar:         u.Avatar,
		Balance:        u.Balance,
		InitialBalance: u.InitialBalance,
		Role:           string(u.Role),
		CreatedAt:      u.CreatedAt,
	}
}

// ToDomainUserPatch converts an API UserPatch model to a domain UserPatch.
func ToDomainUserPatch(p *api.UserPatch) models.UserPatch {
	patch := models.UserPatch{
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Avatar:    p.Avatar,
	}
	if p.Email != nil {
		email := string(*p.Email)
		patch.Email = &email
	}
	if p.ClearAvatar != nil {
		patch.ClearAvatar = *p.ClearAvatar
	}
	return patch
}

// ToApiSession converts the session state, attaching the current user when present.
func ToApiSession(s session.Session, user *models.User) *api.Session {
	out := &api.Session{Mode: api.SessionMode(s.Mode)}
	if user != nil {
		out.User = ToApiUser(user)
	}
	return out
}

// ToDomainQuery converts list parameters to a ledger query.
func ToDomainQuery(params *api.ListTransactionsParams) ledger.Query {
	var q ledger.Query
	if params.Status != nil {
		q.Status = string(*params.Status)
	}
	if params.Type != nil {
		q.Type = string(*params.Type)
	}
	if params.Search != nil {
		q.Search = *params.Search
	}
	if params.Page != nil {
		q.Page = *params.Page
	}
	if params.PerPage != nil {
		q.PerPage = *params.PerPage
	}
	return q
}

// ToApiTransactionPage converts a filtered ledger page.
func ToApiTransactionPage(p ledger.Page) *api.TransactionPage {
	return &api.TransactionPage{
		Transactions: ToApiTransactions(p.Transactions),
		Total:        p.Total,
		Page:         p.Page,
		TotalPages:   p.TotalPages,
	}
}

// ToApiReceipt converts a ledger receipt.
func ToApiReceipt(r ledger.Receipt) *api.Receipt {
	return &api.Receipt{
		TransactionId: r.TransactionID,
		Amount:        r.Amount,
		Label:         string(r.Label),
		Type:          string(r.Type),
		Status:        string(r.Status),
		Description:   r.Description,
		Date:          r.Date,
		Time:          r.Time,
		Balance:       r.Balance,
	}
}

// ToApiAccessDecision converts a gate decision.
func ToApiAccessDecision(d access.Decision) *api.AccessDecision {
	return &api.AccessDecision{
		Action: string(d.Action),
		View:   string(d.View),
		Target: d.Target,
		Params: d.Params,
	}
}

// ToApiUserDetail converts a domain User model including its transaction log.
func ToApiUserDetail(u *models.User) *api.UserDetail {
	return &api.UserDetail{
		User:         *ToApiUser(u),
		Transactions: ToApiTransactions(u.Transactions),
	}
}
