/* input_processing_test.go
 * Contains unit tests for input_processing.go functions
 */

package logic

import (
	"testing"

	"nfl-playoff-picks/api/shared"

	"github.com/stretchr/testify/assert"
)

func TestMatchTeams_ExactMatches(t *testing.T) {
	matched, invalid := MatchTeams([]string{"KC", "BUF"}, []string{"KC", "BUF", "PHI"})

	assert.Equal(t, []string{"KC", "BUF"}, matched)
	assert.Empty(t, invalid)
}

func TestMatchTeams_CaseInsensitive(t *testing.T) {
	matched, invalid := MatchTeams([]string{"kc", "Phi", " buf "}, []string{"KC", "BUF", "PHI"})

	assert.Equal(t, []string{"KC", "PHI", "BUF"}, matched)
	assert.Empty(t, invalid)
}

func TestMatchTeams_InvalidTeams(t *testing.T) {
	matched, invalid := MatchTeams([]string{"KC", "Chiefs", "", "SF"}, []string{"KC", "BUF"})

	assert.Equal(t, []string{"KC"}, matched)
	assert.Equal(t, []string{"Chiefs", "", "SF"}, invalid)
}

func TestMatchTeams_PrefersExactOverPartial(t *testing.T) {
	// "la" is a fuzzy match for both, but LA is exact
	matched, invalid := MatchTeams([]string{"la"}, []string{"LAC", "LA"})

	assert.Equal(t, []string{"LA"}, matched)
	assert.Empty(t, invalid)
}

func TestMatchTeam(t *testing.T) {
	game := shared.Game{ID: "g1", HomeTeam: "HOU", AwayTeam: "LAC"}

	team, ok := MatchTeam("hou", game)
	assert.True(t, ok)
	assert.Equal(t, "HOU", team)

	team, ok = MatchTeam("lac", game)
	assert.True(t, ok)
	assert.Equal(t, "LAC", team)

	_, ok = MatchTeam("KC", game)
	assert.False(t, ok)
}
