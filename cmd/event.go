package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/espnapi/model"
)

// eventCmd represents the event command
var eventCmd = &cobra.Command{
	Use:   "event <league> <event-id>",
	Short: "Show the summary of one event",
	Long: `Show the summary of one event: teams, score, status, venue and attendance.

Example:
  espnapi event nba 401468034 --details`,
	Args:    cobra.ExactArgs(2),
	PreRunE: initializeApp,
	RunE:    runEvent,
}

// leagueCmd represents the league command
var leagueCmd = &cobra.Command{
	Use:     "league <league>",
	Short:   "Show league information from the core API",
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runLeague,
}

func init() {
	rootCmd.AddCommand(eventCmd)
	rootCmd.AddCommand(leagueCmd)
}

func runEvent(cmd *cobra.Command, args []string) error {
	league, err := resolveLeague(args[0])
	if err != nil {
		return err
	}

	resp, err := client.GetEvent(cmd.Context(), league.SportSlug(), league.Slug, args[1])
	if err != nil {
		return describeError("event "+args[1], err)
	}

	game, err := model.EventFromSummary(resp, league)
	if err != nil {
		return err
	}

	if jsonOutput() {
		return printJSON(game)
	}
	fmt.Println(formatter.FormatGame(game, formatOptions()))
	return nil
}

func runLeague(cmd *cobra.Command, args []string) error {
	league, err := resolveLeague(args[0])
	if err != nil {
		return err
	}

	resp, err := client.GetLeagueInfo(cmd.Context(), league.SportSlug(), league.Slug)
	if err != nil {
		return describeError(league.ShortName()+" league", err)
	}

	info, err := model.LeagueFromResponse(resp, league.SportSlug())
	if err != nil {
		return err
	}

	if jsonOutput() {
		return printJSON(info)
	}
	fmt.Println(formatter.FormatLeague(info))
	return nil
}
