package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPipeline() *Pipeline {
	return NewPipeline(DefaultHandlers())
}

func TestParse_SeasonEpisodeResolutionCodec(t *testing.T) {
	p := newTestPipeline()
	res, err := p.Parse("Some.Show.S05E10.480p.BluRay.x264-GROUP")
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, []int{5}, res.Seasons)
	assert.Equal(t, []int{10}, res.Episodes)
	assert.Equal(t, "480p", res.Resolution)
	assert.Equal(t, CodecAvc, res.Codec)
	assert.Equal(t, QualityBluRay, res.Quality)
	assert.Equal(t, "Some Show", res.Title)
}

func TestParse_DateInTitleIsNotMistakenForYear(t *testing.T) {
	p := newTestPipeline()
	res, err := p.Parse("The.Late.Show.With.Stephen.Colbert.2021.11.11.WEB.h264-GROUP")
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, "2021-11-11", res.Date)
	assert.Equal(t, CodecAvc, res.Codec)
}

func TestParse_MultiWordTitleWithYearAndHDR(t *testing.T) {
	p := newTestPipeline()
	res, err := p.Parse("Dune.Part.Two.2024.2160p.WEB-DL.DDP5.1.HDR.x265-GROUP")
	require.NoError(t, err)
	require.NotNil(t, res)

	require.NotNil(t, res.Year)
	assert.Equal(t, 2024, *res.Year)
	assert.Equal(t, "2160p", res.Resolution)
	assert.Equal(t, QualityWebDL, res.Quality)
	assert.Equal(t, CodecHevc, res.Codec)
	assert.Contains(t, res.HDR, "HDR")
	assert.Equal(t, "Dune Part Two", res.Title)
}

func TestParse_ChannelsImplyAC3Audio(t *testing.T) {
	p := newTestPipeline()
	res, err := p.Parse("The.Simpsons.S01E01.DVDRip.5.1.AAC-GROUP")
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Contains(t, res.Channels, "5.1")
	assert.Contains(t, res.Audio, "AC3")
	assert.Contains(t, res.Audio, "AAC")
}

func TestParse_AmbiguousYearLaterValidWins(t *testing.T) {
	p := newTestPipeline()
	res, err := p.Parse("Movie.2012.Extended.Cut.2009.720p-GROUP")
	require.NoError(t, err)
	require.NotNil(t, res)

	require.NotNil(t, res.Year)
	assert.Equal(t, 2009, *res.Year)
}

func TestParse_DateRejectsInvalidCalendarDate(t *testing.T) {
	p := newTestPipeline()
	res, err := p.Parse("Movie.Name.11-11-11.2011.720p-GROUP")
	require.NoError(t, err)
	require.NotNil(t, res)

	if res.Date != "" {
		assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, res.Date)
	}
}

func TestParse_TitleIsAlwaysTrimmed(t *testing.T) {
	p := newTestPipeline()
	res, err := p.Parse("  Some.Movie.2020.1080p.WEB-DL  ")
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, res.Title, strings.TrimSpace(res.Title))
}

func TestParse_SequenceFieldsAreUnique(t *testing.T) {
	p := newTestPipeline()
	res, err := p.Parse("Show.S01E01.S01E01.1080p.DD5.1.DD5.1-GROUP")
	require.NoError(t, err)
	require.NotNil(t, res)

	seen := map[int]bool{}
	for _, s := range res.Seasons {
		assert.False(t, seen[s], "duplicate season %d", s)
		seen[s] = true
	}
	seenCh := map[string]bool{}
	for _, c := range res.Channels {
		assert.False(t, seenCh[c], "duplicate channel %s", c)
		seenCh[c] = true
	}
}

func TestParse_YearOutOfBoundsRejected(t *testing.T) {
	p := newTestPipeline()
	res, err := p.Parse("Old.Film.1850.DVDRip-GROUP")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Nil(t, res.Year)
}

func TestParse_IsDeterministic(t *testing.T) {
	p := newTestPipeline()
	title := "Dune.Part.Two.2024.2160p.WEB-DL.DDP5.1.HDR.x265-GROUP"
	first, err := p.Parse(title)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		next, err := p.Parse(title)
		require.NoError(t, err)
		assert.Equal(t, first, next)
	}
}

func TestParseBatch_PreservesOrderAndLength(t *testing.T) {
	p := newTestPipeline()
	titles := []string{
		"Show.A.S01E01.1080p-GROUP",
		"Show.B.S02E02.720p-GROUP",
		"Show.C.S03E03.480p-GROUP",
		"Show.D.S04E04.2160p-GROUP",
	}

	results := p.ParseBatch(titles, 2)
	require.Len(t, results, len(titles))

	wantRes := []string{"1080p", "720p", "480p", "2160p"}
	for i, r := range results {
		require.NoError(t, r.Err)
		require.NotNil(t, r.Title)
		assert.Equal(t, wantRes[i], r.Title.Resolution)
	}
}

func TestParseBatch_EmptyInput(t *testing.T) {
	p := newTestPipeline()
	results := p.ParseBatch(nil, 4)
	assert.Len(t, results, 0)
}

func TestParse_PanicRecoveryReturnsParseError(t *testing.T) {
	p := NewPipeline([]*Handler{
		newHandler("panics", `(?i)trigger`, func(pt *ParsedTitle) *bool {
			panic("boom")
		}, boolTrue, defaultOptions()),
	})

	res, err := p.Parse("trigger.this.title")
	assert.Nil(t, res)
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ErrorKindPanic, pe.Kind)
}
