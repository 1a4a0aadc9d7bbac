package roster

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// ExemptionColumn is the header holding emails in an exemption file.
const ExemptionColumn = "mail"

// ExemptionSet holds the accounts that must never be removed.
type ExemptionSet struct {
	emails map[string]struct{}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func NewExemptionSet(emails ...string) ExemptionSet {
	set := ExemptionSet{emails: make(map[string]struct{}, len(emails))}
	for _, email := range emails {
		email = normalizeEmail(email)
		if email == "" {
			continue
		}
		set.emails[email] = struct{}{}
	}

	return set
}

// Contains reports whether email is exempted, ignoring case and surrounding spaces.
func (s ExemptionSet) Contains(email string) bool {
	_, ok := s.emails[normalizeEmail(email)]
	return ok
}

func (s ExemptionSet) Len() int {
	return len(s.emails)
}

// ParseExemptionList builds a set from a comma-delimited list of emails.
func ParseExemptionList(list string) ExemptionSet {
	return NewExemptionSet(strings.Split(list, ",")...)
}

// LoadExemptionsFile reads the exemption CSV. A missing file or a file without
// the mail column gives an empty set; only unreadable content is an error.
func LoadExemptionsFile(path string) (ExemptionSet, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Warnf("Exemption file %s not found. Continuing without exemptions.", path)
			return NewExemptionSet(), nil
		}
		return ExemptionSet{}, fmt.Errorf("can't open exemption file %s: %w", path, err)
	}
	defer file.Close()

	set, err := ReadExemptions(file)
	if err != nil {
		return ExemptionSet{}, fmt.Errorf("can't read exemption file %s: %w", path, err)
	}

	log.Infof("Loaded %d exemptions from %s.", set.Len(), path)
	return set, nil
}

// ReadExemptions reads exemption emails from the mail column of a CSV stream.
func ReadExemptions(r io.Reader) (ExemptionSet, error) {
	reader := newCSVReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return NewExemptionSet(), nil
	}
	if err != nil {
		return ExemptionSet{}, err
	}

	index := headerIndex(header)
	column, ok := index[ExemptionColumn]
	if !ok {
		log.Errorf("Column '%s' not found in exemption file. Continuing without exemptions.", ExemptionColumn)
		return NewExemptionSet(), nil
	}

	var emails []string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return ExemptionSet{}, err
		}
		emails = append(emails, field(row, column))
	}

	return NewExemptionSet(emails...), nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// newCSVReader skips a leading UTF-8 byte order mark, which spreadsheet
// exports commonly prepend to the header. Quotes are read leniently so a stray
// quote in a display name doesn't reject the whole file.
func newCSVReader(r io.Reader) *csv.Reader {
	buffered := bufio.NewReader(r)
	if prefix, err := buffered.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = buffered.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(buffered)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return reader
}
