package model

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/espnapi/espn"
)

func decode(t *testing.T, s string) map[string]any {
	t.Helper()

	var m map[string]any
	require.NoError(t, sonic.UnmarshalString(s, &m))
	return m
}

func response(t *testing.T, s string) *espn.Response {
	t.Helper()
	return &espn.Response{Data: decode(t, s), StatusCode: 200, URL: "http://espn.test"}
}

const lakersJSON = `{
	"id": "1",
	"uid": "s:20~l:28~t:1",
	"slug": "los-angeles-lakers",
	"abbreviation": "LAL",
	"displayName": "Los Angeles Lakers",
	"shortDisplayName": "Lakers",
	"name": "Lakers",
	"nickname": "Los Angeles",
	"location": "Los Angeles",
	"color": "552583",
	"alternateColor": "FDB927",
	"isActive": true,
	"isAllStar": false,
	"logos": [
		{"href": "https://a.espncdn.com/i/teamlogos/nba/500/lal.png", "width": 500, "height": 500, "rel": ["full", "default"], "lastUpdated": "2024-06-25T21:17Z"},
		{"href": "https://a.espncdn.com/i/teamlogos/nba/500-dark/lal.png", "rel": ["full", "dark"]}
	],
	"links": [
		{"rel": ["clubhouse", "desktop", "team"], "href": "https://www.espn.com/nba/team/_/name/lal/los-angeles-lakers", "text": "Clubhouse"},
		"not-an-object",
		{"rel": ["roster"], "text": "no href"}
	]
}`

const scoreboardEventJSON = `{
	"id": "401468034",
	"uid": "s:20~l:28~e:401468034",
	"date": "2024-01-15T20:00Z",
	"name": "Los Angeles Lakers at Boston Celtics",
	"shortName": "LAL @ BOS",
	"season": {"year": 2024, "type": 2, "slug": "regular-season"},
	"week": {"number": 12},
	"status": {
		"clock": 0.0,
		"displayClock": "0:00",
		"period": 1,
		"type": {"id": "1", "name": "STATUS_SCHEDULED", "state": "pre", "completed": false, "detail": "Mon, January 15th at 3:00 PM EST"}
	},
	"links": [{"rel": ["summary", "desktop", "event"], "href": "https://www.espn.com/nba/game/_/gameId/401468034"}],
	"competitions": [
		{
			"attendance": 19156,
			"broadcasts": [{"market": "national", "names": ["ESPN"]}, "junk"],
			"venue": {"id": "2132", "fullName": "TD Garden", "address": {"city": "Boston", "state": "MA"}, "indoor": true},
			"competitors": [
				{
					"id": "2",
					"order": 0,
					"homeAway": "home",
					"winner": false,
					"score": "0",
					"team": {"id": "2", "abbreviation": "BOS", "displayName": "Boston Celtics"},
					"linescores": [{"value": 30}, 7],
					"records": [{"name": "overall", "type": "total", "summary": "29-9"}],
					"statistics": [{"name": "rebounds", "abbreviation": "REB", "displayValue": "44"}]
				},
				{
					"id": "13",
					"order": 1,
					"homeAway": "away",
					"winner": false,
					"score": "0",
					"team": {"id": "13", "abbreviation": "LAL", "displayName": "Los Angeles Lakers"}
				}
			]
		}
	]
}`
