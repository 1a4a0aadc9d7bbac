package cmd

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Qovery/remora/pkg"
	"github.com/Qovery/remora/pkg/common"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Remove inactive accounts listed in the roster from the group",
	Run: func(cmd *cobra.Command, args []string) {
		if err := setLogLevel(); err != nil {
			log.Warnf("Invalid log level %q, keeping %s", logLevel, log.GetLevel())
		}

		fmt.Println("")
		fmt.Println(" ____  _____ __  __  ___  ____      _    \n|  _ \\| ____|  \\/  |/ _ \\|  _ \\    / \\   \n| |_) |  _| | |\\/| | | | | |_) |  / _ \\  \n|  _ <| |___| |  | | |_| |  _ <  / ___ \\ \n|_| \\_\\_____|_|  |_|\\___/|_| \\_\\/_/   \\_\\\nBy Qovery")
		fmt.Println("")
		log.Infof("Starting Remora %s", GetCurrentVersion())

		cfg, err := common.LoadConfig(viper.GetViper())
		if err != nil {
			log.Fatalf("Invalid configuration: %s", err.Error())
		}

		pkg.StartCleanup(cfg)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	common.InitFlags(runCmd)
	if err := common.BindFlags(viper.GetViper(), runCmd.Flags()); err != nil {
		panic(err)
	}
}
