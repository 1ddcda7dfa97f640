package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wayfare/wayfare/pkg/user"
)

func TestUserStoreSearchByName(t *testing.T) {
	us := NewUserStore()
	us.PutAll([]*user.Account{
		{Email: "jane@example.com", FirstNames: "Jane Marie", LastName: "Doe"},
		{Email: "john@example.com", FirstNames: "John", LastName: "Doeson"},
		{Email: "ada@example.com", FirstNames: "Ada", LastName: "Lovelace"},
	})

	assert.Len(t, us.SearchByName("", "Doe"), 2)
	assert.Len(t, us.SearchByName("Jane", "Doe"), 1)
	assert.Len(t, us.SearchByName("ane", "oe"), 1)
	// matching is case sensitive
	assert.Empty(t, us.SearchByName("jane", "doe"))
	assert.Len(t, us.SearchByName("", ""), 3)
}
