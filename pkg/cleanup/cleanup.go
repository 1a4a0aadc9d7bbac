package cleanup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/Qovery/remora/pkg/atlassian"
	"github.com/Qovery/remora/pkg/common"
	"github.com/Qovery/remora/pkg/report"
	"github.com/Qovery/remora/pkg/roster"
)

// ErrReportNotWritten means accounts were removed but the report of those
// removals could not be saved.
var ErrReportNotWritten = errors.New("report not written")

// Remover takes an account out of a group.
type Remover interface {
	RemoveFromGroup(ctx context.Context, groupID string, accountID string) (*atlassian.Response, error)
}

// Archiver keeps a copy of the written report.
type Archiver interface {
	Archive(ctx context.Context, path string, groupID string, at time.Time, runID uuid.UUID) (string, error)
}

type Runner struct {
	Config  common.Config
	Remover Remover
	// Archiver is optional.
	Archiver Archiver
	Log      *log.Entry
	Now      func() time.Time
	RunID    uuid.UUID
}

type Failure struct {
	Email      string
	AccountID  string
	StatusCode int
	Detail     string
}

type Summary struct {
	RunID      uuid.UUID
	Total      int
	Eligible   int
	Removed    int
	Excluded   map[roster.Reason]int
	Failures   []Failure
	ReportFile string
	Archived   string
}

func NewRunner(cfg common.Config, remover Remover) *Runner {
	runID := uuid.New()
	return &Runner{
		Config:  cfg,
		Remover: remover,
		RunID:   runID,
		Log:     log.WithFields(log.Fields{"run_id": runID.String(), "group_id": cfg.GroupID}),
		Now:     time.Now,
	}
}

func (r *Runner) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

func (r *Runner) logger() *log.Entry {
	if r.Log == nil {
		return log.NewEntry(log.StandardLogger())
	}
	return r.Log
}

func (r *Runner) loadExemptions() (roster.ExemptionSet, error) {
	if r.Config.Exemptions != "" {
		set := roster.ParseExemptionList(r.Config.Exemptions)
		r.logger().Infof("Loaded %s from the inline list.", common.Plural(set.Len(), "exemption"))
		return set, nil
	}

	return roster.LoadExemptionsFile(r.Config.ExemptionsFile)
}

// Run evaluates the whole roster and removes every eligible account, one at a
// time. Returned errors are fatal. All of them happen before any removal call
// except ErrReportNotWritten, which comes with a complete summary.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	logger := r.logger()
	summary := Summary{RunID: r.RunID, Excluded: map[roster.Reason]int{}}

	exemptions, err := r.loadExemptions()
	if err != nil {
		return summary, err
	}

	users, err := roster.ReadRosterFile(r.Config.RosterFile, r.Config.Columns)
	if err != nil {
		return summary, err
	}
	summary.Total = len(users.Records)

	if !users.HasUserType {
		logger.Warnf("Column '%s' not found in %s. User type check is skipped.", r.Config.Columns.UserType, r.Config.RosterFile)
	}

	evaluator := roster.Evaluator{
		Exemptions:    exemptions,
		Cutoff:        r.Config.Cutoff,
		InactiveDays:  r.Config.InactiveDays,
		CheckUserType: users.HasUserType,
		Now:           r.now,
	}

	if r.Config.DryRun {
		logger.Info("Dry run mode enabled")
	} else {
		_, start := common.ElemToDeleteFormattedInfos("inactive account", 0, r.Config.GroupID)
		logger.Info(start)
	}

	recorder := report.NewRecorder()
	for _, record := range users.Records {
		verdict := evaluator.Evaluate(record)
		if !verdict.Eligible {
			summary.Excluded[verdict.Reason]++
			if verdict.Reason == roster.ReasonMissingAccountID {
				logger.Warnf("Missing account id for %s (line %d), skipping it.", record.Email, record.Line)
				continue
			}
			logger.Debugf("Skipping %s (line %d): %s.", record.Email, record.Line, verdict.Reason)
			continue
		}

		summary.Eligible++
		if r.Config.DryRun {
			logger.Infof("Account %s (%s) will be removed from group %s.", record.Email, record.AccountID, r.Config.GroupID)
			continue
		}

		r.remove(ctx, record, recorder, &summary)
	}
	summary.Removed = recorder.Len()

	var reportErr error
	if r.Config.DryRun {
		count, _ := common.ElemToDeleteFormattedInfos("inactive account", summary.Eligible, r.Config.GroupID)
		logger.Info(count)
	} else {
		reportErr = r.writeReport(ctx, recorder, &summary)
	}
	r.logSummary(summary)

	return summary, reportErr
}

func (r *Runner) remove(ctx context.Context, record roster.Record, recorder *report.Recorder, summary *Summary) {
	logger := r.logger().WithField("account_id", record.AccountID)
	logger.Infof("Removing %s from group %s.", record.Email, r.Config.GroupID)

	resp, err := r.Remover.RemoveFromGroup(ctx, r.Config.GroupID, record.AccountID)
	if err != nil {
		logger.Errorf("Can't remove %s: %s", record.Email, err.Error())
		summary.Failures = append(summary.Failures, Failure{Email: record.Email, AccountID: record.AccountID, Detail: err.Error()})
		return
	}

	if !resp.OK() {
		logger.Errorf("Can't remove %s: status code %d, response: %s", record.Email, resp.StatusCode, resp.Body)
		summary.Failures = append(summary.Failures, Failure{Email: record.Email, AccountID: record.AccountID, StatusCode: resp.StatusCode, Detail: resp.Body})
		return
	}

	logger.Infof("Account %s removed.", record.Email)
	recorder.Add(report.Entry{
		Email:       record.Email,
		AccountID:   record.AccountID,
		ProcessedAt: r.now(),
		GroupID:     r.Config.GroupID,
		LastSeen:    record.LastSeen,
		AddedToOrg:  record.AddedToOrg,
	})
}

// writeReport only fails when the report itself is lost; archive problems are logged.
func (r *Runner) writeReport(ctx context.Context, recorder *report.Recorder, summary *Summary) error {
	logger := r.logger()

	written, err := recorder.WriteFile(r.Config.ReportFile)
	if err != nil {
		logger.Errorf("%s removed but the report is lost: %s", common.Plural(recorder.Len(), "account"), err.Error())
		return fmt.Errorf("%w: %w", ErrReportNotWritten, err)
	}
	if !written {
		logger.Info("No account was removed.")
		return nil
	}
	summary.ReportFile = r.Config.ReportFile

	if r.Archiver == nil {
		return nil
	}
	location, err := r.Archiver.Archive(ctx, r.Config.ReportFile, r.Config.GroupID, r.now(), r.RunID)
	if err != nil {
		logger.Error(err)
		return nil
	}
	summary.Archived = location
	logger.Infof("Report archived to %s.", location)
	return nil
}

func (r *Runner) logSummary(summary Summary) {
	logger := r.logger()

	logger.Infof("Evaluated %s, %d eligible, %d removed.", common.Plural(summary.Total, "account"), summary.Eligible, summary.Removed)
	for _, reason := range roster.Reasons {
		if n := summary.Excluded[reason]; n > 0 {
			logger.Infof("Skipped %s: %s.", common.Plural(n, "account"), reason)
		}
	}

	if len(summary.Failures) > 0 {
		logger.Warnf("%s could not be removed:", common.Plural(len(summary.Failures), "account"))
		for _, failure := range summary.Failures {
			logger.Warnf("  %s", failure)
		}
	}

	if summary.ReportFile != "" {
		logger.Infof("Report written to %s.", summary.ReportFile)
	}
}

func (f Failure) String() string {
	if f.StatusCode == 0 {
		return fmt.Sprintf("%s (%s): %s", f.Email, f.AccountID, f.Detail)
	}
	return fmt.Sprintf("%s (%s): status code %d", f.Email, f.AccountID, f.StatusCode)
}
