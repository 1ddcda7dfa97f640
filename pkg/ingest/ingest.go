// Package ingest reads the flat, line-oriented record files the catalogue is
// populated from, one comma-delimited record per line with a fixed field
// count per record kind. Malformed lines are logged and skipped, never fatal.
package ingest

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"

	"github.com/wayfare/wayfare/pkg/travel"
	"github.com/wayfare/wayfare/pkg/user"
)

func init() {
	// Allow us to ignore those naughty records that have missing columns;
	// field counts are checked per record kind instead
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.FieldsPerRecord = -1
		return r
	})
}

// segmentKinds is the dispatch table for travel record parsing: expected
// field count and constructor per category.
var segmentKinds = map[travel.Category]struct {
	fieldCount int
	parse      func(line string) (travel.Segment, error)
}{
	travel.CategoryFlight: {
		fieldCount: 7,
		parse: func(line string) (travel.Segment, error) {
			var records []flightRecord
			if err := gocsv.UnmarshalWithoutHeaders(strings.NewReader(line), &records); err != nil {
				return travel.Segment{}, err
			}

			return records[0].segment(), nil
		},
	},
}

const accountFieldCount = 6

// ReadSegments parses one segment per line from the reader. Lines with the
// wrong field count, unparsable timestamps, or a negative cost are skipped.
func ReadSegments(reader io.Reader, category travel.Category) []travel.Segment {
	kind := segmentKinds[category]

	var segments []travel.Segment
	forEachLine(reader, kind.fieldCount, func(line string) {
		segment, err := kind.parse(line)
		if err != nil {
			log.Warn().Err(err).Str("category", category.String()).Msg("A line had incorrect arguments, skipping")

			return
		}
		if segment.Cost < 0 {
			log.Warn().Str("id", segment.ID).Msg("A line had a negative cost, skipping")

			return
		}

		segments = append(segments, segment)
	})

	return segments
}

// ReadSegmentsFile parses a segment file from disk.
func ReadSegmentsFile(path string, category travel.Category) ([]travel.Segment, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ReadSegments(file, category), nil
}

// ReadAccounts parses one account per line from the reader.
func ReadAccounts(reader io.Reader, accountType user.Type) []*user.Account {
	var accounts []*user.Account
	forEachLine(reader, accountFieldCount, func(line string) {
		var records []accountRecord
		if err := gocsv.UnmarshalWithoutHeaders(strings.NewReader(line), &records); err != nil {
			log.Warn().Err(err).Str("type", accountType.String()).Msg("A line had incorrect arguments, skipping")

			return
		}

		accounts = append(accounts, records[0].account(accountType))
	})

	return accounts
}

// ReadAccountsFile parses an account file from disk.
func ReadAccountsFile(path string, accountType user.Type) ([]*user.Account, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ReadAccounts(file, accountType), nil
}

func forEachLine(reader io.Reader, fieldCount int, handle func(line string)) {
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}

		if fields := len(strings.Split(line, ",")); fields != fieldCount {
			log.Warn().
				Int("fields", fields).
				Int("expected", fieldCount).
				Msg("A line had the wrong number of arguments, skipping")

			continue
		}

		handle(line)
	}

	if err := scanner.Err(); err != nil {
		log.Error().Err(err).Msg("Failed reading record lines")
	}
}
