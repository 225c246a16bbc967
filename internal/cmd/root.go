package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"teamsync/internal/log"
)

var debugMode bool

var rootCmd = &cobra.Command{
	Use:   "teamsync",
	Short: "Synchronize directory groups to Git hosting service teams",
	Long: `Teamsync keeps the team memberships of a Git hosting service in line with
an LDAP directory. A static mapping assigns directory groups to organization
teams; each run computes the members every mapped team should have and adds
or removes team members until the service matches the directory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		log.SetDebugMode(debugMode)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug output")
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(validateCmd)
}
