package common

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Qovery/remora/pkg/report"
)

// Viper keys. Each one is also a --kebab-case flag and an UPPER_SNAKE environment variable.
const (
	KeySite              = "atlassian_site"
	KeyEmail             = "atlassian_email"
	KeyAPIToken          = "atlassian_api_token"
	KeyAPIURL            = "api_url"
	KeyCutoffDate        = "cutoff_date"
	KeyInactiveDays      = "inactive_days"
	KeyGroupID           = "group_id"
	KeyLastAccessColumn  = "last_access_column"
	KeyUserTypeColumn    = "user_type_column"
	KeyAccountIDColumn   = "account_id_column"
	KeyRosterFile        = "roster_file"
	KeyExemptionsFile    = "exemptions_file"
	KeyExemptions        = "exemptions"
	KeyReportFile        = "report_file"
	KeyRateLimit         = "rate_limit"
	KeyDryRun            = "dry_run"
	KeyReportBucket      = "report_bucket"
	KeyReportS3Endpoint  = "report_s3_endpoint"
	KeyReportS3Region    = "report_s3_region"
	KeyReportS3AccessKey = "report_s3_access_key"
	KeyReportS3SecretKey = "report_s3_secret_key"
	KeyReportS3Insecure  = "report_s3_insecure"
)

const (
	DefaultRosterFile     = "./export-users.csv"
	DefaultExemptionsFile = "./exemptions.csv"
	DefaultReportFile     = report.DefaultFile
)

var allKeys = []string{
	KeySite, KeyEmail, KeyAPIToken, KeyAPIURL, KeyCutoffDate, KeyInactiveDays, KeyGroupID,
	KeyLastAccessColumn, KeyUserTypeColumn, KeyAccountIDColumn, KeyRosterFile, KeyExemptionsFile,
	KeyExemptions, KeyReportFile, KeyRateLimit, KeyDryRun, KeyReportBucket, KeyReportS3Endpoint,
	KeyReportS3Region, KeyReportS3AccessKey, KeyReportS3SecretKey, KeyReportS3Insecure,
}

func FlagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

func InitFlags(runCmd *cobra.Command) {
	flags := runCmd.Flags()

	// Atlassian
	flags.StringP(FlagName(KeySite), "s", "", "Atlassian site domain (e.g. acme.atlassian.net)")
	flags.StringP(FlagName(KeyEmail), "e", "", "Atlassian account email used for basic auth")
	flags.String(FlagName(KeyAPIToken), "", "Atlassian API token used for basic auth")
	flags.String(FlagName(KeyAPIURL), "", "Override the REST API root (default https://<site>/rest/api/3)")
	flags.StringP(FlagName(KeyGroupID), "g", "", "Group to remove inactive accounts from")
	flags.IntP(FlagName(KeyRateLimit), "r", 0, "Max removal calls per second (0 to disable)")

	// Rules
	flags.StringP(FlagName(KeyCutoffDate), "c", "", "Latest onboarding date still eligible for removal (YYYY-MM-DD)")
	flags.StringP(FlagName(KeyInactiveDays), "d", "", "Minimum days since last access to consider an account inactive")
	flags.String(FlagName(KeyExemptions), "", "Comma separated list of exempted emails (replaces the exemption file)")
	flags.String(FlagName(KeyExemptionsFile), DefaultExemptionsFile, "CSV file with a 'mail' column of exempted emails")
	flags.BoolP(FlagName(KeyDryRun), "n", false, "Evaluate the roster without removing anyone")

	// Roster
	flags.StringP(FlagName(KeyRosterFile), "f", DefaultRosterFile, "Exported roster CSV")
	flags.String(FlagName(KeyLastAccessColumn), "", "Roster column holding the last access date")
	flags.String(FlagName(KeyUserTypeColumn), "", "Roster column holding the user type (skipped when absent from the file)")
	flags.String(FlagName(KeyAccountIDColumn), "", "Roster column holding the account id")

	// Report
	flags.StringP(FlagName(KeyReportFile), "o", DefaultReportFile, "Report of removed accounts")
	flags.String(FlagName(KeyReportBucket), "", "Bucket receiving a copy of the report (disabled when empty)")
	flags.String(FlagName(KeyReportS3Endpoint), "", "S3 compatible endpoint of the report bucket")
	flags.String(FlagName(KeyReportS3Region), "", "Region of the report bucket")
	flags.String(FlagName(KeyReportS3AccessKey), "", "Access key of the report bucket")
	flags.String(FlagName(KeyReportS3SecretKey), "", "Secret key of the report bucket")
	flags.Bool(FlagName(KeyReportS3Insecure), false, "Use plain HTTP for the report bucket")
}

// BindFlags makes every setting resolvable from flags, environment or config file.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for _, key := range allKeys {
		if err := v.BindPFlag(key, flags.Lookup(FlagName(key))); err != nil {
			return err
		}
		if err := v.BindEnv(key, envName(key)); err != nil {
			return err
		}
	}

	return nil
}
