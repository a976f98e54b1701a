package session

import (
	"net/mail"
	"strings"
)

// wellFormedEmail accepts a bare address such as jane@example.com. Display
// names ("Jane <jane@example.com>") are rejected.
func wellFormedEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	return addr.Address == email && strings.Contains(addr.Address, "@")
}

// wellFormedCredentials is the only check the store applies to a login pair.
// Password policy belongs to the caller.
func wellFormedCredentials(email, password string) bool {
	return wellFormedEmail(email) && password != ""
}
