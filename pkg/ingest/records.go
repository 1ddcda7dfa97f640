package ingest

import (
	"time"

	"github.com/wayfare/wayfare/pkg/travel"
	"github.com/wayfare/wayfare/pkg/user"
)

// DateTime parses and formats minute-granularity timestamps in CSV fields.
type DateTime struct {
	time.Time
}

func (dt *DateTime) UnmarshalCSV(field string) error {
	parsed, err := time.Parse(travel.DateTimeFormat, field)
	if err != nil {
		return err
	}
	dt.Time = parsed

	return nil
}

func (dt DateTime) MarshalCSV() (string, error) {
	return dt.Format(travel.DateTimeFormat), nil
}

// Date parses and formats day-granularity timestamps in CSV fields.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalCSV(field string) error {
	parsed, err := time.Parse(travel.DateFormat, field)
	if err != nil {
		return err
	}
	d.Time = parsed

	return nil
}

func (d Date) MarshalCSV() (string, error) {
	return d.Format(travel.DateFormat), nil
}

type flightRecord struct {
	ID      string   `csv:"id"`
	Start   DateTime `csv:"start"`
	End     DateTime `csv:"end"`
	Carrier string   `csv:"carrier"`
	Origin  string   `csv:"origin"`
	Dest    string   `csv:"destination"`
	Cost    float64  `csv:"cost"`
}

func (r flightRecord) segment() travel.Segment {
	return travel.Segment{
		ID:          r.ID,
		Category:    travel.CategoryFlight,
		Start:       r.Start.Time,
		End:         r.End.Time,
		Origin:      r.Origin,
		Destination: r.Dest,
		Cost:        r.Cost,
		Carrier:     r.Carrier,
	}
}

type accountRecord struct {
	LastName   string `csv:"lastName"`
	FirstNames string `csv:"firstNames"`
	Email      string `csv:"email"`
	Address    string `csv:"address"`
	CreditCard string `csv:"creditCard"`
	Expiry     Date   `csv:"expiryDate"`
}

func (r accountRecord) account(accountType user.Type) *user.Account {
	return &user.Account{
		Email:      r.Email,
		Type:       accountType,
		FirstNames: r.FirstNames,
		LastName:   r.LastName,
		Address:    r.Address,
		CreditCard: r.CreditCard,
		CardExpiry: r.Expiry.Time,
	}
}
