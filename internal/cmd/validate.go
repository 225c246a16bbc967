package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"teamsync/internal/log"
	"teamsync/pkg/config"
	"teamsync/pkg/directory"
	"teamsync/pkg/hosting"
)

var validateRemote bool

var validateCmd = &cobra.Command{
	Use:   "validate <config-file>",
	Short: "Validate a teamsync configuration file",
	Long: `Validate a teamsync configuration file without changing any team.

Offline validation checks syntax, required fields and the shape of every
mapping entry. With --remote the command additionally connects to the
directory to verify the bind credentials and checks that every mapped team
exists on the hosting service.

Examples:
  # Offline validation
  teamsync validate teamsync.json

  # Also verify directory credentials and mapped team existence
  teamsync validate teamsync.json --remote`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateRemote, "remote", false, "Verify directory credentials and team existence against the backends")
}

func runValidate(_ *cobra.Command, args []string) error {
	cfg, err := config.Load(args[0])
	if err != nil {
		return err
	}

	teams := cfg.Mapping.Teams()
	log.Info("Configuration is valid: %d groups mapped to %d teams", len(cfg.Mapping), len(teams))

	if !validateRemote {
		return nil
	}

	ctx := context.Background()

	dir, err := directory.Connect(cfg.Directory)
	if err != nil {
		return err
	}
	dir.Close()
	log.Info("Directory connection and bind succeeded")

	host, err := hosting.New(ctx, cfg.Hosting)
	if err != nil {
		return err
	}

	missing := 0
	for _, team := range teams {
		if _, err := host.ListTeamMembers(ctx, team); err != nil {
			if hosting.IsNotFound(err) {
				log.ErrorH2("Team %s does not exist", team)
				missing++
				continue
			}
			return err
		}
		log.Debug("Team %s exists", team)
	}
	if missing > 0 {
		return fmt.Errorf("%d mapped teams do not exist", missing)
	}

	log.Info("All %d mapped teams exist", len(teams))
	return nil
}
