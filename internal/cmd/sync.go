package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"teamsync/internal/log"
	"teamsync/pkg/config"
	"teamsync/pkg/directory"
	"teamsync/pkg/hosting"
	"teamsync/pkg/reconcile"
)

var syncDryRun bool

var syncCmd = &cobra.Command{
	Use:   "sync <config-file>",
	Short: "Synchronize team memberships with the directory",
	Long: `Synchronize the team memberships of the configured hosting service with
the directory groups named in the mapping.

For every mapped team the desired membership is the union of all directory
groups assigned to it. Members missing from the team are added, and members
no longer in any mapped group are removed. Teams not named in the mapping
are never read or written.

The run is a single pass and does not retry failed calls. A directory group
that cannot be read contributes no members, a team whose membership cannot
be read is skipped, and a failed membership change is logged; in all three
cases the run continues. The command exits non-zero only when the
configuration is invalid or a backend cannot be reached at all.

Examples:
  # Apply the mapping in teamsync.json
  teamsync sync teamsync.json

  # Show what would change without touching any team
  teamsync sync teamsync.json --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Show planned changes without applying them")
}

func runSync(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load(args[0])
	if err != nil {
		return err
	}
	log.Info("Loaded %d group mappings from %s", len(cfg.Mapping), args[0])

	dir, err := directory.Connect(cfg.Directory)
	if err != nil {
		return err
	}
	defer dir.Close()
	log.Debug("Connected to directory %s", cfg.Directory.Host)

	host, err := hosting.New(ctx, cfg.Hosting)
	if err != nil {
		return err
	}

	reconciler := reconcile.New(dir, host, cfg.Mapping)

	plan, err := reconciler.Plan(ctx)
	if err != nil {
		return err
	}

	for _, groupErr := range plan.GroupErrors {
		log.Warn("%v", groupErr)
	}

	displayPlan(plan)

	if syncDryRun {
		log.Info("Dry run: %d additions and %d removals planned, no changes applied",
			plan.Additions(), plan.Removals())
		return nil
	}

	result := reconciler.Apply(ctx, plan)

	for _, failure := range result.Failed {
		log.ErrorH2("Failed to %s %s on team %s: %v", failure.Action, failure.Username, failure.Team, failure.Err)
	}

	log.Info("Sync finished: %d added, %d removed, %d failed, %d teams skipped",
		result.Added, result.Removed, len(result.Failed), result.Skipped)
	return nil
}

// displayPlan prints the planned changes per team.
func displayPlan(plan *reconcile.Plan) {
	for i := range plan.Teams {
		teamPlan := &plan.Teams[i]

		if teamPlan.Err != nil {
			log.Warn("Skipping team %s: %v", teamPlan.Team, teamPlan.Err)
			continue
		}
		if !teamPlan.Changed() {
			log.Debug("Team %s is up to date", teamPlan.Team)
			continue
		}

		log.Info("Team %s (groups: %s): %d to add, %d to remove",
			teamPlan.Team, strings.Join(teamPlan.Groups, ", "), len(teamPlan.Add), len(teamPlan.Remove))
		for _, username := range teamPlan.Add {
			log.InfoH2("+ %s", username)
		}
		for _, username := range teamPlan.Remove {
			log.InfoH2("- %s", username)
		}
	}
}
