package pkg

import (
	"context"
	"errors"
	"io/fs"

	log "github.com/sirupsen/logrus"

	"github.com/Qovery/remora/pkg/atlassian"
	"github.com/Qovery/remora/pkg/cleanup"
	"github.com/Qovery/remora/pkg/common"
	"github.com/Qovery/remora/pkg/report"
	"github.com/Qovery/remora/pkg/roster"
)

// StartCleanup runs one reconciliation of the roster against the group and
// exits the process on any fatal error.
func StartCleanup(cfg common.Config) cleanup.Summary {
	if cfg.DryRun {
		log.Info("Dry run mode enabled")
	} else {
		log.Warn("Dry run mode disabled")
	}
	log.Infof("Site: %s, group: %s", cfg.Site, cfg.GroupID)

	client, err := atlassian.NewClient(atlassian.Options{
		BaseURL:   cfg.APIURL,
		Email:     cfg.Email,
		APIToken:  cfg.APIToken,
		RateLimit: cfg.RateLimit,
	})
	if err != nil {
		log.Fatalf("Can't create Atlassian client: %s", err.Error())
	}

	runner := cleanup.NewRunner(cfg, client)

	if cfg.Archive.Enabled() {
		bucketApi, err := common.CreateMinIOSession(cfg.Archive)
		if err != nil {
			log.Fatalf("Can't create report archive session: %s", err.Error())
		}
		runner.Archiver = report.NewArchiver(bucketApi, cfg.Archive.Bucket)
	}

	summary, err := runner.Run(context.Background())
	if err != nil {
		switch {
		case errors.Is(err, cleanup.ErrReportNotWritten):
			log.Fatalf("Removed %d of %d eligible accounts, report %s not written: %s", summary.Removed, summary.Eligible, cfg.ReportFile, err.Error())
		case errors.Is(err, roster.ErrMissingColumn):
			log.Fatalf("Invalid roster %s: %s", cfg.RosterFile, err.Error())
		case errors.Is(err, fs.ErrNotExist):
			log.Fatalf("Roster file %s not found", cfg.RosterFile)
		default:
			log.Fatal(err)
		}
	}

	return summary
}
