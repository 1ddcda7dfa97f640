package ingest

import (
	"io"

	"github.com/gocarina/gocsv"

	"github.com/wayfare/wayfare/pkg/travel"
	"github.com/wayfare/wayfare/pkg/user"
)

// WriteSegments writes segments back out in the flat ingestion format.
func WriteSegments(writer io.Writer, segments []travel.Segment) error {
	records := make([]flightRecord, 0, len(segments))
	for _, segment := range segments {
		records = append(records, flightRecord{
			ID:      segment.ID,
			Start:   DateTime{segment.Start},
			End:     DateTime{segment.End},
			Carrier: segment.Carrier,
			Origin:  segment.Origin,
			Dest:    segment.Destination,
			Cost:    segment.Cost,
		})
	}

	return gocsv.MarshalWithoutHeaders(&records, writer)
}

// WriteAccounts writes accounts back out in the flat ingestion format.
func WriteAccounts(writer io.Writer, accounts []*user.Account) error {
	records := make([]accountRecord, 0, len(accounts))
	for _, account := range accounts {
		records = append(records, accountRecord{
			LastName:   account.LastName,
			FirstNames: account.FirstNames,
			Email:      account.Email,
			Address:    account.Address,
			CreditCard: account.CreditCard,
			Expiry:     Date{account.CardExpiry},
		})
	}

	return gocsv.MarshalWithoutHeaders(&records, writer)
}
