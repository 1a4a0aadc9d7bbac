package common

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Qovery/remora/pkg/atlassian"
	"github.com/Qovery/remora/pkg/roster"
)

const CutoffLayout = "2006-01-02"

var (
	ErrMissingSetting = errors.New("required setting is missing")
	ErrInvalidSetting = errors.New("invalid setting")
)

// Config is built once at startup and handed to the cleanup run.
type Config struct {
	Site     string
	Email    string
	APIToken string
	// APIURL is the REST root; derived from Site unless overridden.
	APIURL       string
	GroupID      string
	Cutoff       time.Time
	InactiveDays int
	Columns      roster.Columns

	RosterFile     string
	ExemptionsFile string
	// Exemptions is an inline comma-delimited list. When set it replaces
	// ExemptionsFile.
	Exemptions string
	ReportFile string

	RateLimit int
	DryRun    bool
	Archive   ArchiveOptions
}

func envName(key string) string {
	return strings.ToUpper(key)
}

// LoadConfig reads every setting from v and rejects the configuration when a
// required setting is missing or a value can't be parsed.
func LoadConfig(v *viper.Viper) (Config, error) {
	var missing []string
	required := func(key string) string {
		value := strings.TrimSpace(v.GetString(key))
		if value == "" {
			missing = append(missing, envName(key))
		}
		return value
	}

	cfg := Config{
		Site:     required(KeySite),
		Email:    required(KeyEmail),
		APIToken: required(KeyAPIToken),
		GroupID:  required(KeyGroupID),
		Columns: roster.Columns{
			LastAccess: required(KeyLastAccessColumn),
			UserType:   required(KeyUserTypeColumn),
			AccountID:  required(KeyAccountIDColumn),
		},
		APIURL:         strings.TrimSpace(v.GetString(KeyAPIURL)),
		RosterFile:     v.GetString(KeyRosterFile),
		ExemptionsFile: v.GetString(KeyExemptionsFile),
		Exemptions:     strings.TrimSpace(v.GetString(KeyExemptions)),
		ReportFile:     v.GetString(KeyReportFile),
		DryRun:         v.GetBool(KeyDryRun),
		Archive: ArchiveOptions{
			Bucket:    strings.TrimSpace(v.GetString(KeyReportBucket)),
			Endpoint:  strings.TrimSpace(v.GetString(KeyReportS3Endpoint)),
			Region:    v.GetString(KeyReportS3Region),
			AccessKey: v.GetString(KeyReportS3AccessKey),
			SecretKey: v.GetString(KeyReportS3SecretKey),
			Insecure:  v.GetBool(KeyReportS3Insecure),
		},
	}
	cutoff := required(KeyCutoffDate)
	inactiveDays := required(KeyInactiveDays)

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", ErrMissingSetting, strings.Join(missing, ", "))
	}

	var err error
	cfg.Cutoff, err = time.Parse(CutoffLayout, cutoff)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s must be a YYYY-MM-DD date, got %q", ErrInvalidSetting, envName(KeyCutoffDate), cutoff)
	}

	cfg.InactiveDays, err = strconv.Atoi(inactiveDays)
	if err != nil || cfg.InactiveDays < 0 {
		return Config{}, fmt.Errorf("%w: %s must be a non-negative integer, got %q", ErrInvalidSetting, envName(KeyInactiveDays), inactiveDays)
	}

	if rateLimit := strings.TrimSpace(v.GetString(KeyRateLimit)); rateLimit != "" {
		cfg.RateLimit, err = strconv.Atoi(rateLimit)
		if err != nil || cfg.RateLimit < 0 {
			return Config{}, fmt.Errorf("%w: %s must be a non-negative integer, got %q", ErrInvalidSetting, envName(KeyRateLimit), rateLimit)
		}
	}

	if cfg.APIURL == "" {
		cfg.APIURL = atlassian.BaseURL(cfg.Site)
	}
	if cfg.RosterFile == "" {
		cfg.RosterFile = DefaultRosterFile
	}
	if cfg.ExemptionsFile == "" {
		cfg.ExemptionsFile = DefaultExemptionsFile
	}
	if cfg.ReportFile == "" {
		cfg.ReportFile = DefaultReportFile
	}

	return cfg, nil
}
