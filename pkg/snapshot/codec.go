package snapshot

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/wayfare/wayfare/pkg/store"
	"github.com/wayfare/wayfare/pkg/travel"
	"github.com/wayfare/wayfare/pkg/user"
)

var ErrCorruptPayload = errors.New("corrupt snapshot payload")

// encodeStore lays the store's full state out as the snapshot payload:
// category count, per-category segment lists, then accounts each followed by
// their booked itineraries as (category, identifier) leg references. Booked
// itineraries are stored as references rather than records so the load path
// re-validates them against the reconstructed stores.
func encodeStore(ms *store.MainStore) []byte {
	buf := &bytes.Buffer{}

	categories := travel.Categories()
	buf.WriteByte(byte(len(categories)))
	for _, category := range categories {
		segments := ms.Travels(category)
		writeUint32(buf, uint32(len(segments)))
		for _, segment := range segments {
			writeSegment(buf, segment)
		}
	}

	accounts := ms.Users()
	writeUint32(buf, uint32(len(accounts)))
	for _, account := range accounts {
		writeAccount(buf, account)

		booked := account.Booked()
		writeUint32(buf, uint32(len(booked)))
		for _, itinerary := range booked {
			legs := itinerary.Legs()
			writeUint32(buf, uint32(len(legs)))
			for _, leg := range legs {
				buf.WriteByte(byte(leg.Category))
				writeString(buf, leg.ID)
			}
		}
	}

	return buf.Bytes()
}

// decodeInto replays the payload into an empty store. Itinerary legs resolve
// against the segments just reconstructed; an itinerary with a missing leg, a
// broken chain, or no legs at all is dropped wholesale.
func decodeInto(data []byte, ms *store.MainStore) error {
	r := &payloadReader{reader: bytes.NewReader(data)}

	categories := travel.Categories()
	categoryCount, err := r.readByte()
	if err != nil {
		return err
	}

	for i := 0; i < int(categoryCount); i++ {
		if i >= len(categories) {
			return fmt.Errorf("%w: %d travel categories, expected at most %d", ErrCorruptPayload, categoryCount, len(categories))
		}

		segmentCount, err := r.readUint32()
		if err != nil {
			return err
		}
		for j := uint32(0); j < segmentCount; j++ {
			segment, err := readSegment(r, categories[i])
			if err != nil {
				return err
			}

			ms.AddSegment(segment)
		}
	}

	accountCount, err := r.readUint32()
	if err != nil {
		return err
	}
	for i := uint32(0); i < accountCount; i++ {
		account, err := readAccount(r)
		if err != nil {
			return err
		}
		ms.AddUser(account)

		bookedCount, err := r.readUint32()
		if err != nil {
			return err
		}
		for j := uint32(0); j < bookedCount; j++ {
			legCount, err := r.readUint32()
			if err != nil {
				return err
			}

			valid := legCount > 0
			itinerary := travel.NewItinerary()
			for k := uint32(0); k < legCount; k++ {
				categoryByte, err := r.readByte()
				if err != nil {
					return err
				}
				id, err := r.readString()
				if err != nil {
					return err
				}

				if int(categoryByte) >= len(categories) {
					return fmt.Errorf("%w: itinerary leg references travel category %d", ErrCorruptPayload, categoryByte)
				}

				segment, ok := ms.Travel(categories[categoryByte], id)
				if !ok {
					// the referenced segment expired between save and load;
					// keep consuming the remaining legs
					valid = false

					continue
				}
				if itinerary.Add(segment) != nil {
					valid = false
				}
			}

			if valid {
				account.Book(itinerary)
			}
		}
	}

	return nil
}

func writeUint32(buf *bytes.Buffer, value uint32) {
	binary.Write(buf, binary.BigEndian, value)
}

func writeInt64(buf *bytes.Buffer, value int64) {
	binary.Write(buf, binary.BigEndian, value)
}

func writeString(buf *bytes.Buffer, value string) {
	binary.Write(buf, binary.BigEndian, uint16(len(value)))
	buf.WriteString(value)
}

func writeSegment(buf *bytes.Buffer, segment travel.Segment) {
	writeString(buf, segment.ID)
	writeInt64(buf, segment.Start.Unix())
	writeInt64(buf, segment.End.Unix())
	writeString(buf, segment.Origin)
	writeString(buf, segment.Destination)
	binary.Write(buf, binary.BigEndian, math.Float64bits(segment.Cost))
	writeString(buf, segment.Carrier)
}

func writeAccount(buf *bytes.Buffer, account *user.Account) {
	writeString(buf, account.Email)
	buf.WriteByte(byte(account.Type))
	writeString(buf, account.FirstNames)
	writeString(buf, account.LastName)
	writeString(buf, account.Address)
	writeString(buf, account.CreditCard)
	writeInt64(buf, account.CardExpiry.Unix())
	writeString(buf, account.PasswordHash)
}

func readSegment(r *payloadReader, category travel.Category) (travel.Segment, error) {
	var segment travel.Segment
	var err error

	segment.Category = category
	if segment.ID, err = r.readString(); err != nil {
		return segment, err
	}

	start, err := r.readInt64()
	if err != nil {
		return segment, err
	}
	end, err := r.readInt64()
	if err != nil {
		return segment, err
	}
	segment.Start = time.Unix(start, 0).UTC()
	segment.End = time.Unix(end, 0).UTC()

	if segment.Origin, err = r.readString(); err != nil {
		return segment, err
	}
	if segment.Destination, err = r.readString(); err != nil {
		return segment, err
	}

	costBits, err := r.readUint64()
	if err != nil {
		return segment, err
	}
	segment.Cost = math.Float64frombits(costBits)

	segment.Carrier, err = r.readString()

	return segment, err
}

func readAccount(r *payloadReader) (*user.Account, error) {
	account := &user.Account{}
	var err error

	if account.Email, err = r.readString(); err != nil {
		return nil, err
	}

	typeByte, err := r.readByte()
	if err != nil {
		return nil, err
	}
	if int(typeByte) >= len(user.Types()) {
		return nil, fmt.Errorf("%w: unknown account type %d", ErrCorruptPayload, typeByte)
	}
	account.Type = user.Type(typeByte)

	if account.FirstNames, err = r.readString(); err != nil {
		return nil, err
	}
	if account.LastName, err = r.readString(); err != nil {
		return nil, err
	}
	if account.Address, err = r.readString(); err != nil {
		return nil, err
	}
	if account.CreditCard, err = r.readString(); err != nil {
		return nil, err
	}

	expiry, err := r.readInt64()
	if err != nil {
		return nil, err
	}
	account.CardExpiry = time.Unix(expiry, 0).UTC()

	account.PasswordHash, err = r.readString()

	return account, err
}

type payloadReader struct {
	reader *bytes.Reader
}

func (r *payloadReader) readByte() (byte, error) {
	return r.reader.ReadByte()
}

func (r *payloadReader) readUint32() (uint32, error) {
	var value uint32
	err := binary.Read(r.reader, binary.BigEndian, &value)

	return value, err
}

func (r *payloadReader) readUint64() (uint64, error) {
	var value uint64
	err := binary.Read(r.reader, binary.BigEndian, &value)

	return value, err
}

func (r *payloadReader) readInt64() (int64, error) {
	var value int64
	err := binary.Read(r.reader, binary.BigEndian, &value)

	return value, err
}

func (r *payloadReader) readString() (string, error) {
	var length uint16
	if err := binary.Read(r.reader, binary.BigEndian, &length); err != nil {
		return "", err
	}

	data := make([]byte, length)
	if _, err := io.ReadFull(r.reader, data); err != nil {
		return "", err
	}

	return string(data), nil
}
