package store

import (
	"strings"

	"github.com/wayfare/wayfare/pkg/user"
)

// UserStore holds every registered account keyed by email.
type UserStore struct {
	*IdentifiableStore[string, *user.Account]
}

func NewUserStore() *UserStore {
	return &UserStore{
		IdentifiableStore: NewIdentifiableStore[string, *user.Account](),
	}
}

// SearchByName returns every account whose first names contain firstNames and
// whose last name contains lastName. Matching is case sensitive.
func (us *UserStore) SearchByName(firstNames string, lastName string) []*user.Account {
	var matched []*user.Account
	for _, account := range us.All() {
		if strings.Contains(account.FirstNames, firstNames) && strings.Contains(account.LastName, lastName) {
			matched = append(matched, account)
		}
	}

	return matched
}
