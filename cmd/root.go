package cmd

import (
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	logLevel string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "remora",
	Short: "Remora removes inactive accounts from an Atlassian group",
	Long: `
Remora reads an exported Atlassian user roster. Accounts that are not exempted, were onboarded before
the cutoff date and have not been seen for the configured number of days are removed from a group.

Every removed account is written to a CSV report. Settings come from flags, environment variables
or a config file (a .env file works).`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.remora or $HOME/.remora)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "level", "info", "set log level")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in the working directory, then home, with name ".remora" (dotenv format).
		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.SetConfigName(".remora")
		viper.SetConfigType("env")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		fmt.Printf("Can't read config file %s: %s\n", cfgFile, err)
		os.Exit(1)
	}
}

func setLogLevel() error {
	lvl, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return err
	}

	logrus.SetLevel(lvl)

	// use timestamp
	formatter := &logrus.TextFormatter{
		FullTimestamp: true,
	}
	logrus.SetFormatter(formatter)
	return nil
}
