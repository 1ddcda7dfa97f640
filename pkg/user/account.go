package user

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/wayfare/wayfare/pkg/travel"
	"github.com/wayfare/wayfare/pkg/util"
)

// Type is the closed set of account kinds.
type Type uint8

const (
	TypeClient Type = iota
	TypeAdministrator
)

func Types() []Type {
	return []Type{TypeClient, TypeAdministrator}
}

func (t Type) String() string {
	switch t {
	case TypeClient:
		return "client"
	case TypeAdministrator:
		return "administrator"
	}

	return fmt.Sprintf("type(%d)", uint8(t))
}

// PrivilegeLevel returns the numeric privilege the account type grants.
func (t Type) PrivilegeLevel() int {
	if t == TypeAdministrator {
		return AdminLevel
	}

	return ClientLevel
}

func ParseType(value string) (Type, error) {
	for _, t := range Types() {
		if t.String() == value {
			return t, nil
		}
	}

	return 0, fmt.Errorf("unknown account type %q", value)
}

// Account is a registered user of the catalogue. The booked itinerary set is
// deliberately excluded from the serialized form; the snapshot engine rebuilds
// it after resolving segment references.
type Account struct {
	Email string `groups:"basic"`
	Type  Type   `groups:"basic"`

	FirstNames string `groups:"basic"`
	LastName   string `groups:"basic"`
	Address    string `groups:"detailed"`

	CreditCard string
	CardExpiry time.Time

	PasswordHash string

	booked []*travel.Itinerary
}

func (a *Account) Identifier() string {
	return a.Email
}

// HasPrivilege reports whether the account's privilege level meets the
// operation's required level.
func (a *Account) HasPrivilege(required int) bool {
	return a.Type.PrivilegeLevel() >= required
}

// Book adds an itinerary to the account's booked set. Booking an itinerary
// equal to one already held is a no-op.
func (a *Account) Book(itinerary *travel.Itinerary) {
	for _, existing := range a.booked {
		if existing.Equal(itinerary) {
			return
		}
	}

	a.booked = append(a.booked, itinerary)
}

// Unbook removes any booked itinerary equal to the given one.
func (a *Account) Unbook(itinerary *travel.Itinerary) {
	util.InPlaceFilter(&a.booked, func(existing *travel.Itinerary) bool {
		return !existing.Equal(itinerary)
	})
}

// PurgeSegment drops every booked itinerary containing the segment. An
// itinerary is never trimmed down, only discarded wholesale.
func (a *Account) PurgeSegment(segment travel.Segment) {
	util.InPlaceFilter(&a.booked, func(existing *travel.Itinerary) bool {
		return !existing.Contains(segment)
	})
}

func (a *Account) Booked() []*travel.Itinerary {
	return a.booked
}

// SetPassword stores a bcrypt hash of the password. An empty password clears
// the stored hash.
func (a *Account) SetPassword(password string) error {
	if password == "" {
		a.PasswordHash = ""
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = string(hash)

	return nil
}

func (a *Account) CheckPassword(password string) bool {
	if a.PasswordHash == "" {
		return password == ""
	}

	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil
}

func (a *Account) String() string {
	return fmt.Sprintf("%s,%s,%s,%s,%s,%s",
		a.LastName, a.FirstNames, a.Email, a.Address,
		a.CreditCard, a.CardExpiry.Format(travel.DateFormat),
	)
}
