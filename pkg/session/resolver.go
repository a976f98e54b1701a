package session

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/chris/apexfx-session/pkg/models"
	"github.com/shopspring/decimal"
)

// Credentials is a syntactically valid login pair and the role being claimed.
type Credentials struct {
	Email    string
	Password string
	Role     models.Role
}

// IdentityResolver maps credentials to a user. It is the boundary to whatever
// identity authority backs the platform.
type IdentityResolver interface {
	Resolve(ctx context.Context, creds Credentials) (*models.User, error)
}

// DirectoryResolver resolves identities from the Directory. An unknown email
// yields a fresh user with the starting balance, since no credential authority
// is consulted.
type DirectoryResolver struct {
	Directory       *Directory
	StartingBalance decimal.Decimal
}

// Make sure we conform to the interface
var _ IdentityResolver = (*DirectoryResolver)(nil)

// Resolve returns the known user for creds or a new one that is not yet stored.
func (r *DirectoryResolver) Resolve(ctx context.Context, creds Credentials) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if u, ok := r.Directory.FindByEmail(creds.Email, creds.Role); ok {
		return u, nil
	}

	local, _, _ := strings.Cut(creds.Email, "@")
	first, last, _ := strings.Cut(local, ".")
	return r.Directory.newUser(creds.Email, titleCase(first), titleCase(last), creds.Role, r.StartingBalance), nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// newUser builds an unsaved user with an empty ledger.
func (d *Directory) newUser(email, firstName, lastName string, role models.Role, startingBalance decimal.Decimal) *models.User {
	return &models.User{
		Id:             d.newID(),
		Email:          email,
		FirstName:      firstName,
		LastName:       lastName,
		Balance:        startingBalance,
		InitialBalance: startingBalance,
		Transactions:   []models.Transaction{},
		Role:           role,
		CreatedAt:      d.now(),
	}
}
