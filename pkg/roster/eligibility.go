package roster

import (
	"strings"
	"time"
)

// Reason explains why a record is not removed. It is empty for eligible records.
type Reason string

const (
	ReasonExempted         Reason = "exempted"
	ReasonNotAUser         Reason = "not-a-user"
	ReasonInvalidAddedDate Reason = "invalid-added-date"
	ReasonAddedAfterCutoff Reason = "added-after-cutoff"
	ReasonInvalidLastSeen  Reason = "invalid-last-seen"
	ReasonRecentlyActive   Reason = "recently-active"
	ReasonMissingAccountID Reason = "missing-account-id"
)

// Reasons lists every exclusion reason in evaluation order.
var Reasons = []Reason{
	ReasonExempted,
	ReasonNotAUser,
	ReasonInvalidAddedDate,
	ReasonAddedAfterCutoff,
	ReasonInvalidLastSeen,
	ReasonRecentlyActive,
	ReasonMissingAccountID,
}

const userTypeLabel = "user"

type Verdict struct {
	Record   Record
	Eligible bool
	Reason   Reason
}

// Evaluator decides, record by record, which accounts must leave the group.
type Evaluator struct {
	Exemptions ExemptionSet
	// Cutoff is the latest onboarding day still eligible for removal.
	Cutoff       time.Time
	InactiveDays int
	// CheckUserType enables the user-type predicate. It must be false when the
	// roster has no user-type column.
	CheckUserType bool
	Now           func() time.Time
}

func (e Evaluator) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// Evaluate applies the predicates in order and stops at the first one that fails.
func (e Evaluator) Evaluate(record Record) Verdict {
	if reason := e.exclusion(record); reason != "" {
		return Verdict{Record: record, Reason: reason}
	}

	return Verdict{Record: record, Eligible: true}
}

func (e Evaluator) exclusion(record Record) Reason {
	if e.Exemptions.Contains(record.Email) {
		return ReasonExempted
	}

	if e.CheckUserType && strings.ToLower(strings.TrimSpace(record.UserType)) != userTypeLabel {
		return ReasonNotAUser
	}

	addedToOrg, ok := ParseDay(record.AddedToOrg, time.UTC)
	if !ok {
		return ReasonInvalidAddedDate
	}
	cutoff := e.Cutoff.UTC()
	cutoffDay := time.Date(cutoff.Year(), cutoff.Month(), cutoff.Day(), 0, 0, 0, 0, time.UTC)
	if addedToOrg.After(cutoffDay) {
		return ReasonAddedAfterCutoff
	}

	now := e.now()
	lastSeen, ok := ParseLastSeen(record.LastSeen, now.Location())
	if !ok {
		return ReasonInvalidLastSeen
	}
	if !lastSeen.Never && DaysSince(lastSeen.Date, now) < e.InactiveDays {
		return ReasonRecentlyActive
	}

	if strings.TrimSpace(record.AccountID) == "" {
		return ReasonMissingAccountID
	}

	return ""
}
