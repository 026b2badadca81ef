package filter

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/espnapi/model"
)

func newTestGame(id string, status model.EventStatus, homeScore, awayScore string, homeWins bool) *model.Game {
	ev := &model.Event{
		ID:         id,
		Name:       "Los Angeles Lakers at Boston Celtics",
		ShortName:  "LAL @ BOS",
		Date:       time.Now().AddDate(0, 0, -3),
		Status:     status,
		League:     model.Leagues["nba"],
		SeasonYear: 2024,
		Venue:      &model.Venue{Name: "TD Garden", City: "Boston"},
	}
	homeWinner, awayWinner := homeWins, !homeWins
	return &model.Game{
		Event: ev,
		Competitors: []*model.Competitor{
			{
				Event:    ev,
				HomeAway: "home",
				Score:    homeScore,
				Winner:   &homeWinner,
				Team:     &model.Team{Abbreviation: "BOS", DisplayName: "Boston Celtics", ShortDisplayName: "Celtics"},
			},
			{
				Event:    ev,
				HomeAway: "away",
				Score:    awayScore,
				Winner:   &awayWinner,
				Team:     &model.Team{Abbreviation: "LAL", DisplayName: "Los Angeles Lakers", ShortDisplayName: "Lakers"},
			},
		},
	}
}

func TestCompileFilter(t *testing.T) {
	tests := []struct {
		name        string
		expression  string
		wantErr     bool
		errContains string
	}{
		{
			name:       "valid expression",
			expression: `hasTeam("BOS")`,
		},
		{
			name:        "empty expression",
			expression:  "   ",
			wantErr:     true,
			errContains: "empty expression",
		},
		{
			name:       "invalid syntax",
			expression: `hasTeam("unclosed`,
			wantErr:    true,
		},
		{
			name:       "complex expression",
			expression: `hasTeam("LAL") and HomeScore > 100 and Date < daysAgo(1)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := NewExprCompiler().Compile(tt.expression)

			if tt.wantErr {
				require.Error(t, err)
				var compErr *CompilationError
				require.True(t, errors.As(err, &compErr))
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}

			require.NoError(t, err)
			require.NotNil(t, filter)
			assert.Equal(t, tt.expression, filter.Expression())
		})
	}
}

func TestGameFilterEvaluation(t *testing.T) {
	final := newTestGame("1", model.StatusFinal, "114", "105", true)
	live := newTestGame("2", model.StatusInProgress, "50", "52", false)
	scheduled := newTestGame("3", model.StatusScheduled, "", "", false)

	tests := []struct {
		name       string
		expression string
		game       *model.Game
		expected   bool
	}{
		{"has team by abbreviation", `hasTeam("bos")`, final, true},
		{"has team by short name", `hasTeam("Lakers")`, final, true},
		{"missing team", `hasTeam("NYK")`, final, false},
		{"live", `isLive()`, live, true},
		{"not live", `isLive()`, final, false},
		{"final", `isFinal() and Status == "final"`, final, true},
		{"scheduled", `isScheduled()`, scheduled, true},
		{"score comparison", `HomeScore > 100 and AwayScore >= 105`, final, true},
		{"unreported score", `HomeScore >= 0`, scheduled, false},
		{"margin", `margin() == 9`, final, true},
		{"total score", `totalScore() == 219`, final, true},
		{"winner", `winner() == "BOS"`, final, true},
		{"away winner", `winner() == "LAL"`, live, true},
		{"league and venue", `League == "nba" and Venue == "TD Garden" and City == "Boston"`, final, true},
		{"date comparison", `Date < daysAgo(1)`, final, true},
		{"season", `SeasonYear == 2024`, final, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := NewExprCompiler().Compile(tt.expression)
			require.NoError(t, err)

			got, err := filter.Evaluate(GameEnv(tt.game))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got, tt.expression)
		})
	}
}

func TestTeamFilterEvaluation(t *testing.T) {
	team := &model.Team{
		ID:               "13",
		Abbreviation:     "LAL",
		DisplayName:      "Los Angeles Lakers",
		ShortDisplayName: "Lakers",
		IsActive:         true,
		League:           model.Leagues["nba"],
		Logos:            []model.Logo{{Href: "https://a.espncdn.com/lal.png", Rel: []string{"default"}}},
	}

	tests := []struct {
		expression string
		expected   bool
	}{
		{`Abbreviation == "LAL" and hasLogo()`, true},
		{`is("lakers")`, true},
		{`is("celtics")`, false},
		{`Active and not AllStar`, true},
		{`League == "nfl"`, false},
	}

	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			filter, err := NewExprCompiler().Compile(tt.expression)
			require.NoError(t, err)

			got, err := filter.Evaluate(TeamEnv(team))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestAthleteFilterEvaluation(t *testing.T) {
	age := 39
	lakers := &model.Team{Abbreviation: "LAL", DisplayName: "Los Angeles Lakers"}
	signed := &model.Athlete{DisplayName: "LeBron James", PositionAbbreviation: "SF", Position: "Small Forward", Age: &age, IsActive: true, Team: lakers}
	freeAgent := &model.Athlete{DisplayName: "Jane Doe"}

	tests := []struct {
		name       string
		expression string
		athlete    *model.Athlete
		expected   bool
	}{
		{"position and age", `isPosition("sf") and Age > 30`, signed, true},
		{"position by name", `isPosition("small forward")`, signed, true},
		{"plays for", `playsFor("LAL") and Team == "LAL"`, signed, true},
		{"free agent", `FreeAgent and not playsFor("LAL")`, freeAgent, true},
		{"unknown position", `Position == "Unknown" and Age == 0`, freeAgent, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := NewExprCompiler().Compile(tt.expression)
			require.NoError(t, err)

			got, err := filter.Evaluate(AthleteEnv(tt.athlete))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSelect(t *testing.T) {
	ctx := context.Background()
	games := generateTestGames(250)

	filter, err := CompileFilter(`isFinal() and HomeScore > 100`)
	require.NoError(t, err)

	matches, err := Select(ctx, filter, games, GameEnv)
	require.NoError(t, err)

	var expected []*model.Game
	for _, g := range games {
		ok, err := filter.Evaluate(GameEnv(g))
		require.NoError(t, err)
		if ok {
			expected = append(expected, g)
		}
	}
	require.NotEmpty(t, expected)
	assert.Equal(t, expected, matches, "concurrent selection keeps input order")

	small, err := Select(ctx, filter, games[:10], GameEnv)
	require.NoError(t, err)
	for _, g := range small {
		assert.True(t, g.Event.IsCompleted())
	}

	all, err := Select(ctx, nil, games, GameEnv)
	require.NoError(t, err)
	assert.Len(t, all, len(games), "nil filter matches everything")
}

func TestSelectEvaluationError(t *testing.T) {
	filter, err := NewExprCompiler().Compile(`HomeScore.Foo == 1`)
	require.NoError(t, err)

	_, err = Select(context.Background(), filter, generateTestGames(3), GameEnv)
	require.Error(t, err)

	var evalErr *EvaluationError
	require.True(t, errors.As(err, &evalErr))
	assert.Equal(t, `HomeScore.Foo == 1`, evalErr.Expression)
}

func TestPresets(t *testing.T) {
	presets := NewPresets()

	err := presets.Load(map[string]string{
		"live":    `isLive()`,
		"celtics": `hasTeam("BOS")`,
		"blowout": `margin() >= 20`,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"blowout", "celtics", "live"}, presets.Names())

	filter, ok := presets.Lookup("celtics")
	require.True(t, ok)
	require.NotNil(t, filter)

	resolved, err := presets.Resolve("", "celtics")
	require.NoError(t, err)
	assert.Same(t, filter, resolved)

	adhoc, err := presets.Resolve(`isFinal()`, "celtics")
	require.NoError(t, err)
	assert.Equal(t, `isFinal()`, adhoc.Expression(), "an expression wins over a preset")

	none, err := presets.Resolve("", "")
	require.NoError(t, err)
	assert.Nil(t, none)

	_, err = presets.Resolve("", "missing")
	assert.ErrorIs(t, err, ErrUnknownPreset)

	err = presets.Load(map[string]string{"broken": `hasTeam(`, "final": `isFinal()`})
	require.Error(t, err)
	_, ok = presets.Lookup("final")
	assert.False(t, ok, "a failing batch loads nothing")

	require.NoError(t, presets.Add("final", `isFinal()`))
	_, ok = presets.Lookup("final")
	assert.True(t, ok)

	presets.Remove("celtics")
	_, ok = presets.Lookup("celtics")
	assert.False(t, ok)
}

func TestCacheEffectiveness(t *testing.T) {
	compiler := NewExprCompiler(WithCache(2))
	expression := `hasTeam("BOS") and HomeScore > 100`

	first, err := compiler.Compile(expression)
	require.NoError(t, err)
	second, err := compiler.Compile(expression)
	require.NoError(t, err)
	assert.Same(t, first, second)

	cachingCompiler, ok := compiler.(CachingCompiler)
	require.True(t, ok)
	assert.Equal(t, 1, cachingCompiler.Size())

	for i := range 3 {
		_, err := compiler.Compile(fmt.Sprintf("HomeScore > %d", i))
		require.NoError(t, err)
	}
	assert.Equal(t, 2, cachingCompiler.Size(), "oldest entries are evicted")

	cachingCompiler.Clear()
	assert.Equal(t, 0, cachingCompiler.Size())
}

func TestCustomFunctions(t *testing.T) {
	compiler := NewExprCompiler(WithCustomFunctions(map[string]any{
		"rivalry": func() bool { return true },
	}))

	filter, err := compiler.Compile(`rivalry() and hasTeam("LAL")`)
	require.NoError(t, err)

	got, err := filter.Evaluate(GameEnv(newTestGame("1", model.StatusFinal, "1", "2", false)))
	require.NoError(t, err)
	assert.True(t, got)
}
