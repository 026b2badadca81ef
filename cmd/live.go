package cmd

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/s0up4200/espnapi/espn"
	"github.com/s0up4200/espnapi/filter"
	"github.com/s0up4200/espnapi/model"
)

var liveTimeout time.Duration

// liveCmd represents the live command
var liveCmd = &cobra.Command{
	Use:   "live",
	Short: "Show games in progress across all predefined leagues",
	Long: `Fetch every predefined league's scoreboard concurrently and show only the
games currently in progress. A filter narrows the result further. A league
that fails to load is reported without hiding the others.`,
	PreRunE: loadApp,
	RunE:    runLive,
}

func init() {
	rootCmd.AddCommand(liveCmd)

	liveCmd.Flags().DurationVar(&liveTimeout, "timeout", time.Minute, "overall deadline for all leagues")
	addFilterFlags(liveCmd)
}

func runLive(cmd *cobra.Command, args []string) error {
	f, err := activeFilter()
	if err != nil {
		return err
	}

	clientCfg, err := cfg.Client.ClientConfig()
	if err != nil {
		return err
	}
	async, err := espn.NewAsyncClient(clientCfg, clientOptions()...)
	if err != nil {
		return fmt.Errorf("failed to create ESPN client: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), liveTimeout)
	defer cancel()

	leagues := make([]*model.League, 0, len(model.Leagues))
	for _, slug := range slices.Sorted(maps.Keys(model.Leagues)) {
		leagues = append(leagues, model.Leagues[slug])
	}

	var (
		results  []leagueGames
		failures []error
	)
	err = espn.UseAsync(ctx, async, func(ctx context.Context) error {
		results, failures = collectLive(ctx, async, leagues, f)
		return nil
	})
	if err != nil {
		return err
	}
	if len(failures) == len(leagues) {
		return errors.Join(failures...)
	}

	if jsonOutput() {
		return printJSON(results)
	}

	if len(results) == 0 {
		fmt.Println("No games in progress")
	}
	for _, r := range results {
		fmt.Println(formatter.FormatGames(r.League, r.Games, formatOptions()))
	}
	for _, failure := range failures {
		fmt.Printf("! %v\n", failure)
	}
	return nil
}

// collectLive starts one scoreboard call per league and awaits each on its
// own, so a failing league only costs its own games. Leagues without live
// games are left out; results keep the order of leagues.
func collectLive(ctx context.Context, async *espn.AsyncClient, leagues []*model.League, f filter.CompiledFilter) ([]leagueGames, []error) {
	calls := make([]*espn.Call, len(leagues))
	for i, league := range leagues {
		calls[i] = async.GetScoreboard(ctx, league.SportSlug(), league.Slug)
	}

	var (
		results  []leagueGames
		failures []error
	)
	for i, call := range calls {
		league := leagues[i]

		games, err := liveGames(ctx, call, league, f)
		if err != nil {
			logger.Warn().Err(err).Str("league", league.Slug).Msg("Failed to fetch live scoreboard")
			failures = append(failures, describeError(league.ShortName()+" scoreboard", err))
			continue
		}
		if len(games) > 0 {
			results = append(results, leagueGames{League: league, Games: games})
		}
	}
	return results, failures
}

func liveGames(ctx context.Context, call *espn.Call, league *model.League, f filter.CompiledFilter) ([]*model.Game, error) {
	resp, err := call.Await(ctx)
	if err != nil {
		return nil, err
	}

	games, err := model.ScoreboardFromResponse(resp, league)
	if err != nil {
		return nil, err
	}
	games = slices.DeleteFunc(games, func(g *model.Game) bool {
		return !g.Event.IsLive()
	})
	return filter.Select(ctx, f, games, filter.GameEnv)
}
