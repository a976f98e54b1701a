package ledger

import (
	"strings"

	"github.com/chris/apexfx-session/pkg/models"
)

// DefaultPerPage matches the transaction history page size.
const DefaultPerPage = 10

// MaxPerPage caps the page size a caller can ask for.
const MaxPerPage = 100

// Query selects and pages a transaction log. Empty or "all" filters match
// everything. Page is 1-based.
type Query struct {
	Status  string
	Type    string
	Search  string
	Page    int
	PerPage int
}

// Page is one page of filtered transactions.
type Page struct {
	Transactions []models.Transaction `json:"transactions"`
	Total        int                  `json:"total"`
	Page         int                  `json:"page"`
	TotalPages   int                  `json:"total_pages"`
}

func (q Query) matches(tx models.Transaction) bool {
	if q.Status != "" && q.Status != "all" && string(tx.Status) != q.Status {
		return false
	}
	if q.Type != "" && q.Type != "all" && string(tx.Type) != q.Type {
		return false
	}
	if q.Search == "" {
		return true
	}
	needle := strings.ToLower(q.Search)
	return strings.Contains(strings.ToLower(tx.Id), needle) ||
		strings.Contains(strings.ToLower(tx.Description), needle)
}

// Filter applies q to txs, preserving log order. A page past the end yields an
// empty page with the correct totals.
func Filter(txs []models.Transaction, q Query) Page {
	perPage := q.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	page := q.Page
	if page < 1 {
		page = 1
	}

	matched := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if q.matches(tx) {
			matched = append(matched, tx)
		}
	}

	// Compare in page units so huge page numbers cannot overflow.
	start := len(matched)
	if page-1 <= len(matched)/perPage {
		start = min((page-1)*perPage, len(matched))
	}
	end := start + min(perPage, len(matched)-start)

	return Page{
		Transactions: matched[start:end],
		Total:        len(matched),
		Page:         page,
		TotalPages:   (len(matched) + perPage - 1) / perPage,
	}
}
