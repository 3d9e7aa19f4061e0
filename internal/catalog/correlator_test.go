package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterCascade_DropsBelowMinimumScore(t *testing.T) {
	hits := []scored{
		{imdbID: "tt1", title: "breaking bad", score: 1.0},
		{imdbID: "tt2", title: "breaking good", score: 0.1},
	}
	out := filterCascade(hits, "breaking bad", 0.85)
	require.Len(t, out, 1)
	assert.Equal(t, "tt1", out[0].imdbID)
	assert.Equal(t, 1.0, out[0].score)
}

func TestFilterCascade_TopResultNormalizesToOne(t *testing.T) {
	hits := []scored{
		{imdbID: "tt1", title: "dune part two", score: 0.6},
		{imdbID: "tt2", title: "dune part one", score: 0.55},
	}
	out := filterCascade(hits, "dune part two", 0.85)
	require.NotEmpty(t, out)
	assert.Equal(t, 1.0, out[0].score)
	for _, h := range out {
		assert.LessOrEqual(t, h.score, 1.0)
	}
}

func TestFilterCascade_EmptyWhenNoSurvivors(t *testing.T) {
	hits := []scored{
		{imdbID: "tt1", title: "completely unrelated show", score: 1.0},
	}
	out := filterCascade(hits, "breaking bad", 0.85)
	assert.Empty(t, out)
}

func TestFilterCascade_ExactSingleMatch(t *testing.T) {
	hits := []scored{
		{imdbID: "tt0903747", title: "Breaking Bad", year: 2008, score: 1.0},
	}
	out := filterCascade(hits, "breaking bad", 0.85)
	require.Len(t, out, 1)
	assert.Equal(t, "tt0903747", out[0].imdbID)
	assert.Equal(t, 1.0, out[0].score)
}

func TestToSetAndOverlapCount(t *testing.T) {
	a := toSet([]string{"breaking", "bad"})
	b := toSet([]string{"bad", "news", "bears"})
	assert.Equal(t, 1, overlapCount(a, b))
}
