package mapping

import (
	"testing"

	"github.com/chris/apexfx-session/pkg/api"
	"github.com/chris/apexfx-session/pkg/models"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainUserPatch(t *testing.T) {
	email := openapi_types.Email("new@example.com")
	clearAvatar := true
	first := "Jane"

	patch := ToDomainUserPatch(&api.UserPatch{FirstName: &first, Email: &email, ClearAvatar: &clearAvatar})

	require.NotNil(t, patch.Email)
	assert.Equal(t, "new@example.com", *patch.Email)
	assert.Equal(t, "Jane", *patch.FirstName)
	assert.Nil(t, patch.LastName)
	assert.True(t, patch.ClearAvatar)
}

func TestToDomainNewTransaction(t *testing.T) {
	t.Run("Default Status Left Empty", func(t *testing.T) {
		newTx := ToDomainNewTransaction(&api.NewTransaction{Amount: decimal.NewFromInt(5), Type: api.Credit})

		assert.Equal(t, models.CREDIT, newTx.Type)
		assert.Empty(t, newTx.Status)
	})

	t.Run("Explicit Status", func(t *testing.T) {
		status := api.Success
		newTx := ToDomainNewTransaction(&api.NewTransaction{Amount: decimal.NewFromInt(5), Type: api.Debit, Status: &status})

		assert.Equal(t, models.SUCCESS, newTx.Status)
	})
}

func TestToDomainQuery(t *testing.T) {
	status := api.Pending
	page := 3

	q := ToDomainQuery(&api.ListTransactionsParams{Status: &status, Page: &page})

	assert.Equal(t, "pending", q.Status)
	assert.Equal(t, 3, q.Page)
	assert.Empty(t, q.Type)
	assert.Zero(t, q.PerPage)
}

func TestToApiTransaction(t *testing.T) {
	tx := &models.Transaction{Id: "t1", Amount: decimal.NewFromInt(40), Type: models.DEBIT, Status: models.SUCCESS, Description: "Trading loss on EURUSD"}

	out := ToApiTransaction(tx)

	assert.Equal(t, "Trading Loss", out.Category)
	assert.Equal(t, api.Debit, out.Type)
}
