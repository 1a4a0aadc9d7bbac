package roster

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	EmailColumn      = "email"
	AddedToOrgColumn = "Added to org"
)

var ErrMissingColumn = errors.New("missing required column")

// SchemaError reports a required roster column that is absent from the header.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s '%s'", ErrMissingColumn, e.Column)
}

func (e *SchemaError) Unwrap() error {
	return ErrMissingColumn
}

// Columns names the configurable roster headers.
type Columns struct {
	AccountID  string
	LastAccess string
	UserType   string
}

type Record struct {
	Line       int
	Email      string
	AccountID  string
	AddedToOrg string
	LastSeen   string
	UserType   string
}

type Roster struct {
	Records     []Record
	HasUserType bool
}

func ReadRosterFile(path string, columns Columns) (*Roster, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("can't open roster %s: %w", path, err)
	}
	defer file.Close()

	return ReadRoster(file, columns)
}

// ReadRoster parses the whole export. The header is checked before any record
// is returned, so a schema problem never yields a partial roster.
func ReadRoster(r io.Reader, columns Columns) (*Roster, error) {
	reader := newCSVReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("roster is empty: %w", &SchemaError{Column: EmailColumn})
	}
	if err != nil {
		return nil, fmt.Errorf("can't read roster header: %w", err)
	}

	index := headerIndex(header)
	for _, column := range []string{columns.AccountID, EmailColumn, AddedToOrgColumn, columns.LastAccess} {
		if _, ok := index[column]; !ok {
			return nil, &SchemaError{Column: column}
		}
	}

	userTypeIdx, hasUserType := index[columns.UserType]
	if columns.UserType == "" {
		hasUserType = false
	}

	roster := &Roster{HasUserType: hasUserType}
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("can't read roster line %d: %w", line, err)
		}

		record := Record{
			Line:       line,
			Email:      normalizeEmail(field(row, index[EmailColumn])),
			AccountID:  field(row, index[columns.AccountID]),
			AddedToOrg: field(row, index[AddedToOrgColumn]),
			LastSeen:   field(row, index[columns.LastAccess]),
		}
		if hasUserType {
			record.UserType = field(row, userTypeIdx)
		}

		roster.Records = append(roster.Records, record)
	}

	return roster, nil
}

func headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, ok := index[name]; !ok {
			index[name] = i
		}
	}

	return index
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
