package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/espnapi/espn"
	"github.com/s0up4200/espnapi/filter"
	"github.com/s0up4200/espnapi/model"
)

var (
	athletesTeam    string
	athletesLimit   int
	athletesPage    int
	athletesResolve bool
)

// maxRefFetches bounds concurrent $ref lookups
const maxRefFetches = 8

// athletesCmd represents the athletes command
var athletesCmd = &cobra.Command{
	Use:   "athletes <league>",
	Short: "List one page of a league's athletes",
	Long: `List one page of athletes from the core API. The core API only returns
links; --resolve fetches each athlete so names, positions and filters work.

Examples:
  espnapi athletes nba --team 13 --resolve
  espnapi athletes nfl --resolve -f 'isPosition("QB") and Age < 30'`,
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runAthletes,
}

func init() {
	rootCmd.AddCommand(athletesCmd)

	athletesCmd.Flags().StringVar(&athletesTeam, "team", "", "only athletes of this team id")
	athletesCmd.Flags().IntVar(&athletesLimit, "limit", espn.DefaultAthletesLimit, "page size")
	athletesCmd.Flags().IntVar(&athletesPage, "page", espn.DefaultAthletesPage, "page number, starting at 1")
	athletesCmd.Flags().BoolVar(&athletesResolve, "resolve", false, "fetch each athlete behind its $ref")
	addFilterFlags(athletesCmd)
}

func runAthletes(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	league, err := resolveLeague(args[0])
	if err != nil {
		return err
	}

	f, err := activeFilter()
	if err != nil {
		return err
	}
	if f != nil && !athletesResolve {
		return fmt.Errorf("filters need athlete details, add --resolve")
	}

	opts := []espn.RequestOption{espn.WithLimit(athletesLimit), espn.WithPage(athletesPage)}

	var team *model.Team
	if athletesTeam != "" {
		opts = append(opts, espn.WithTeam(athletesTeam))

		resp, err := client.GetTeam(ctx, league.SportSlug(), league.Slug, athletesTeam)
		if err != nil {
			return describeError("team "+athletesTeam, err)
		}
		if team, err = model.TeamFromResponse(resp, league); err != nil {
			return err
		}
	}

	resp, err := client.GetAthletes(ctx, league.SportSlug(), league.Slug, opts...)
	if err != nil {
		return describeError(league.ShortName()+" athletes", err)
	}

	page, err := model.PageFromResponse(resp)
	if err != nil {
		return err
	}

	athletes, err := model.AthletesFromResponse(resp, team)
	if err != nil {
		return err
	}

	refs, err := model.AthleteRefs(resp)
	if err != nil {
		return err
	}

	if athletesResolve && len(refs) > 0 {
		resolved, err := resolveAthletes(ctx, refs, team)
		if err != nil {
			return err
		}
		athletes = append(athletes, resolved...)
	}

	if len(athletes) == 0 {
		if jsonOutput() {
			return printJSON(map[string]any{"page": page, "refs": refs})
		}
		fmt.Println(formatter.FormatAthleteRefs(refs, page))
		return nil
	}

	athletes, err = filter.Select(ctx, f, athletes, filter.AthleteEnv)
	if err != nil {
		return err
	}

	if jsonOutput() {
		return printJSON(map[string]any{"page": page, "athletes": athletes})
	}
	fmt.Println(formatter.FormatAthletes(athletes, page, formatOptions()))
	return nil
}

// resolveAthletes fetches every $ref concurrently and keeps the page order.
// Refs that are not found are skipped.
func resolveAthletes(ctx context.Context, refs []string, team *model.Team) ([]*model.Athlete, error) {
	out := make([]*model.Athlete, len(refs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxRefFetches)
	for i, ref := range refs {
		g.Go(func() error {
			u, err := url.Parse(ref)
			if err != nil {
				return fmt.Errorf("invalid athlete ref %q: %w", ref, err)
			}

			resp, err := client.Get(gctx, espn.DomainCore, u.Path, u.Query())
			if err != nil {
				if errors.Is(err, espn.ErrNotFound) {
					logger.Debug().Str("ref", ref).Msg("Athlete ref not found")
					return nil
				}
				return describeError("athlete "+u.Path, err)
			}

			if resp.Data == nil {
				return espn.NewIngestionError("athlete response is not an object", nil)
			}
			out[i] = model.MapAthlete(resp.Data, team)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	athletes := make([]*model.Athlete, 0, len(out))
	for _, a := range out {
		if a != nil {
			athletes = append(athletes, a)
		}
	}

	logger.Debug().Int("refs", len(refs)).Int("resolved", len(athletes)).Msg("Athlete refs resolved")
	return athletes, nil
}
