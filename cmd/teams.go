package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/espnapi/espn"
	"github.com/s0up4200/espnapi/filter"
	"github.com/s0up4200/espnapi/model"
)

var teamsLimit int

// teamsCmd represents the teams command
var teamsCmd = &cobra.Command{
	Use:   "teams <league>",
	Short: "List the teams of a league",
	Long: `List the teams of a league.

Examples:
  espnapi teams nba
  espnapi teams nfl -f 'startsWith(Location, "New")'`,
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runTeams,
}

// teamCmd represents the team command
var teamCmd = &cobra.Command{
	Use:     "team <league> <team-id>",
	Short:   "Show one team",
	Args:    cobra.ExactArgs(2),
	PreRunE: initializeApp,
	RunE:    runTeam,
}

func init() {
	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(teamCmd)

	teamsCmd.Flags().IntVar(&teamsLimit, "limit", espn.DefaultTeamsLimit, "maximum number of teams")
	addFilterFlags(teamsCmd)
}

func runTeams(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	league, err := resolveLeague(args[0])
	if err != nil {
		return err
	}

	f, err := activeFilter()
	if err != nil {
		return err
	}

	resp, err := client.GetTeams(ctx, league.SportSlug(), league.Slug, espn.WithLimit(teamsLimit))
	if err != nil {
		return describeError(league.ShortName()+" teams", err)
	}

	teams, err := model.TeamsFromResponse(resp, league)
	if err != nil {
		return err
	}

	teams, err = filter.Select(ctx, f, teams, filter.TeamEnv)
	if err != nil {
		return err
	}

	logger.Debug().Int("count", len(teams)).Str("league", league.Slug).Msg("Teams fetched")

	if jsonOutput() {
		return printJSON(teams)
	}
	fmt.Println(formatter.FormatTeams(teams, formatOptions()))
	return nil
}

func runTeam(cmd *cobra.Command, args []string) error {
	league, err := resolveLeague(args[0])
	if err != nil {
		return err
	}

	resp, err := client.GetTeam(cmd.Context(), league.SportSlug(), league.Slug, args[1])
	if err != nil {
		return describeError("team "+args[1], err)
	}

	team, err := model.TeamFromResponse(resp, league)
	if err != nil {
		return err
	}

	if jsonOutput() {
		return printJSON(team)
	}
	fmt.Println(formatter.FormatTeam(team, formatOptions()))
	return nil
}
