package common

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/suite"
)

type ConfigSuite struct {
	suite.Suite
	v *viper.Viper
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigSuite))
}

func (s *ConfigSuite) SetupTest() {
	s.v = viper.New()
	s.v.Set(KeySite, "acme.atlassian.net")
	s.v.Set(KeyEmail, "admin@acme.com")
	s.v.Set(KeyAPIToken, "token")
	s.v.Set(KeyCutoffDate, "2025-01-01")
	s.v.Set(KeyInactiveDays, "90")
	s.v.Set(KeyGroupID, "group-1")
	s.v.Set(KeyLastAccessColumn, "Last seen in Jira")
	s.v.Set(KeyUserTypeColumn, "User type")
	s.v.Set(KeyAccountIDColumn, "User id")
}

func (s *ConfigSuite) TestLoadConfig() {
	cfg, err := LoadConfig(s.v)
	s.Require().NoError(err)

	s.Equal("acme.atlassian.net", cfg.Site)
	s.Equal("https://acme.atlassian.net/rest/api/3", cfg.APIURL)
	s.Equal(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), cfg.Cutoff)
	s.Equal(90, cfg.InactiveDays)
	s.Equal("group-1", cfg.GroupID)
	s.Equal("User id", cfg.Columns.AccountID)
	s.Equal("Last seen in Jira", cfg.Columns.LastAccess)
	s.Equal("User type", cfg.Columns.UserType)
	s.Equal(DefaultRosterFile, cfg.RosterFile)
	s.Equal(DefaultExemptionsFile, cfg.ExemptionsFile)
	s.Equal(DefaultReportFile, cfg.ReportFile)
	s.Zero(cfg.RateLimit)
	s.False(cfg.DryRun)
	s.False(cfg.Archive.Enabled())
}

func (s *ConfigSuite) TestMissingSettings() {
	s.v.Set(KeyAPIToken, "")
	s.v.Set(KeyGroupID, "  ")

	_, err := LoadConfig(s.v)
	s.Require().ErrorIs(err, ErrMissingSetting)
	s.Contains(err.Error(), "ATLASSIAN_API_TOKEN")
	s.Contains(err.Error(), "GROUP_ID")
}

func (s *ConfigSuite) TestInvalidSettings() {
	s.Run("non integer threshold", func() {
		s.v.Set(KeyInactiveDays, "ninety")
		_, err := LoadConfig(s.v)
		s.ErrorIs(err, ErrInvalidSetting)
		s.Contains(err.Error(), "INACTIVE_DAYS")
	})

	s.Run("negative threshold", func() {
		s.v.Set(KeyInactiveDays, "-1")
		_, err := LoadConfig(s.v)
		s.ErrorIs(err, ErrInvalidSetting)
	})

	s.Run("bad cutoff", func() {
		s.v.Set(KeyInactiveDays, "30")
		s.v.Set(KeyCutoffDate, "01/01/2025")
		_, err := LoadConfig(s.v)
		s.ErrorIs(err, ErrInvalidSetting)
		s.Contains(err.Error(), "CUTOFF_DATE")
	})

	s.Run("bad rate limit", func() {
		s.v.Set(KeyCutoffDate, "2025-01-01")
		s.v.Set(KeyRateLimit, "fast")
		_, err := LoadConfig(s.v)
		s.ErrorIs(err, ErrInvalidSetting)
	})
}

func (s *ConfigSuite) TestOverrides() {
	s.v.Set(KeyAPIURL, "http://localhost:8080/rest/api/3")
	s.v.Set(KeyExemptions, " a@acme.com,b@acme.com ")
	s.v.Set(KeyRateLimit, "5")
	s.v.Set(KeyDryRun, true)
	s.v.Set(KeyReportBucket, "reports")

	cfg, err := LoadConfig(s.v)
	s.Require().NoError(err)
	s.Equal("http://localhost:8080/rest/api/3", cfg.APIURL)
	s.Equal("a@acme.com,b@acme.com", cfg.Exemptions)
	s.Equal(5, cfg.RateLimit)
	s.True(cfg.DryRun)
	s.True(cfg.Archive.Enabled())
}

func (s *ConfigSuite) TestBindFlags() {
	cmd := &cobra.Command{Use: "run"}
	InitFlags(cmd)

	v := viper.New()
	s.Require().NoError(BindFlags(v, cmd.Flags()))

	s.T().Setenv("ATLASSIAN_SITE", "env.atlassian.net")
	s.T().Setenv("INACTIVE_DAYS", "45")
	s.Require().NoError(cmd.Flags().Parse([]string{
		"--atlassian-email", "flag@acme.com",
		"--atlassian-api-token", "token",
		"--cutoff-date", "2024-12-31",
		"--group-id", "g",
		"--last-access-column", "Last seen",
		"--user-type-column", "Type",
		"--account-id-column", "Id",
		"--dry-run",
	}))

	cfg, err := LoadConfig(v)
	s.Require().NoError(err)
	s.Equal("env.atlassian.net", cfg.Site)
	s.Equal("flag@acme.com", cfg.Email)
	s.Equal(45, cfg.InactiveDays)
	s.True(cfg.DryRun)
	s.Equal(DefaultRosterFile, cfg.RosterFile)
}

func (s *ConfigSuite) TestCreateMinIOSession() {
	_, err := CreateMinIOSession(ArchiveOptions{Bucket: "reports"})
	s.ErrorIs(err, ErrMissingSetting)

	client, err := CreateMinIOSession(ArchiveOptions{Bucket: "reports", Endpoint: "https://s3.example.com", AccessKey: "a", SecretKey: "b"})
	s.Require().NoError(err)
	s.Equal("s3.example.com", client.EndpointURL().Host)
}
