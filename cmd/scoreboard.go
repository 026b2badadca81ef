package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/espnapi/espn"
	"github.com/s0up4200/espnapi/filter"
	"github.com/s0up4200/espnapi/model"
)

var (
	scoreboardDate  string
	scoreboardLimit int
)

// maxLeagueFetches bounds concurrent scoreboard requests
const maxLeagueFetches = 4

// scoreboardCmd represents the scoreboard command
var scoreboardCmd = &cobra.Command{
	Use:   "scoreboard [league...]",
	Short: "Show scoreboards for one or more leagues",
	Long: `Show the scoreboard of each league. Without arguments the leagues from
output.leagues in the config are used. Leagues are fetched concurrently.

Examples:
  espnapi scoreboard nba nfl
  espnapi scoreboard nba --date 2024-01-15
  espnapi scoreboard nba -f 'hasTeam("BOS") and isFinal()'`,
	PreRunE: initializeApp,
	RunE:    runScoreboard,
}

func init() {
	rootCmd.AddCommand(scoreboardCmd)

	scoreboardCmd.Flags().StringVar(&scoreboardDate, "date", "", "date as YYYY-MM-DD, YYYYMMDD or an ESPN range (YYYYMMDD-YYYYMMDD)")
	scoreboardCmd.Flags().IntVar(&scoreboardLimit, "limit", 0, "maximum number of events per league")
	addFilterFlags(scoreboardCmd)
}

// leagueGames is one league's filtered scoreboard
type leagueGames struct {
	League *model.League `json:"league"`
	Games  []*model.Game `json:"games"`
}

func runScoreboard(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	names := args
	if len(names) == 0 {
		names = cfg.Output.Leagues
	}
	leagues := make([]*model.League, 0, len(names))
	for _, name := range names {
		l, err := resolveLeague(name)
		if err != nil {
			return err
		}
		leagues = append(leagues, l)
	}

	f, err := activeFilter()
	if err != nil {
		return err
	}

	opts, err := scoreboardOptions()
	if err != nil {
		return err
	}

	results := make([]leagueGames, len(leagues))
	var (
		mu       sync.Mutex
		failures []error
	)

	// One failing league does not hide the others
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxLeagueFetches)
	for i, league := range leagues {
		g.Go(func() error {
			games, err := fetchScoreboard(gctx, league, f, opts)
			if err != nil {
				logger.Warn().Err(err).Str("league", league.Slug).Msg("Failed to fetch scoreboard")
				mu.Lock()
				failures = append(failures, describeError(league.ShortName()+" scoreboard", err))
				mu.Unlock()
				return nil
			}
			results[i] = leagueGames{League: league, Games: games}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if len(failures) == len(leagues) {
		return errors.Join(failures...)
	}

	if jsonOutput() {
		out := make([]leagueGames, 0, len(results))
		for _, r := range results {
			if r.League != nil {
				out = append(out, r)
			}
		}
		return printJSON(out)
	}

	for _, r := range results {
		if r.League == nil {
			continue
		}
		fmt.Println(formatter.FormatGames(r.League, r.Games, formatOptions()))
	}
	for _, failure := range failures {
		fmt.Printf("! %v\n", failure)
	}

	return nil
}

// fetchScoreboard fetches, maps and filters one league's scoreboard
func fetchScoreboard(ctx context.Context, league *model.League, f filter.CompiledFilter, opts []espn.RequestOption) ([]*model.Game, error) {
	resp, err := client.GetScoreboard(ctx, league.SportSlug(), league.Slug, opts...)
	if err != nil {
		return nil, err
	}
	games, err := model.ScoreboardFromResponse(resp, league)
	if err != nil {
		return nil, err
	}
	return filter.Select(ctx, f, games, filter.GameEnv)
}

func scoreboardOptions() ([]espn.RequestOption, error) {
	var opts []espn.RequestOption

	switch {
	case scoreboardDate == "":
	case strings.Contains(scoreboardDate, "-") && len(scoreboardDate) == len("2006-01-02"):
		day, err := time.Parse("2006-01-02", scoreboardDate)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", scoreboardDate, err)
		}
		opts = append(opts, espn.WithDate(day))
	default:
		opts = append(opts, espn.WithDateString(scoreboardDate))
	}

	if scoreboardLimit > 0 {
		opts = append(opts, espn.WithLimit(scoreboardLimit))
	}

	return opts, nil
}
