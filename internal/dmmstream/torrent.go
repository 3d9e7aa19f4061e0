package dmmstream

import (
	"strconv"
	"time"

	"github.com/funkypenguin/zilean-go/internal/catalog"
	"github.com/funkypenguin/zilean-go/internal/parser"
)

// TorrentInfo is one fully enriched DMM hashlist entry: parsed release
// metadata plus the torrent's own identity fields and its correlated
// IMDb id, if any.
type TorrentInfo struct {
	RawTitle        string          `json:"raw_title"`
	ParsedTitle     string          `json:"parsed_title"`
	NormalizedTitle string          `json:"normalized_title"`
	Year            int             `json:"year,omitempty"`
	Resolution      string          `json:"resolution,omitempty"`
	Seasons         []int           `json:"seasons,omitempty"`
	Episodes        []int           `json:"episodes,omitempty"`
	Complete        bool            `json:"complete"`
	Volumes         []int           `json:"volumes,omitempty"`
	Languages       []parser.Language `json:"languages,omitempty"`
	Quality         string          `json:"quality,omitempty"`
	HDR             []string        `json:"hdr,omitempty"`
	Codec           string          `json:"codec,omitempty"`
	Audio           []string        `json:"audio,omitempty"`
	Channels        []string        `json:"channels,omitempty"`
	Dubbed          bool            `json:"dubbed"`
	Subbed          bool            `json:"subbed"`
	Date            string          `json:"date,omitempty"`
	Group           string          `json:"group,omitempty"`
	Edition         string          `json:"edition,omitempty"`
	BitDepth        string          `json:"bit_depth,omitempty"`
	Bitrate         string          `json:"bitrate,omitempty"`
	Network         string          `json:"network,omitempty"`
	Extended        bool            `json:"extended"`
	Converted       bool            `json:"converted"`
	Hardcoded       bool            `json:"hardcoded"`
	Region          string          `json:"region,omitempty"`
	PPV             bool            `json:"ppv"`
	Is3D            bool            `json:"is_3d"`
	Site            string          `json:"site,omitempty"`
	Size            string          `json:"size,omitempty"`
	Proper          bool            `json:"proper"`
	Repack          bool            `json:"repack"`
	Retail          bool            `json:"retail"`
	Upscaled        bool            `json:"upscaled"`
	Remastered      bool            `json:"remastered"`
	Unrated         bool            `json:"unrated"`
	Documentary     bool            `json:"documentary"`
	EpisodeCode     string          `json:"episode_code,omitempty"`
	Country         string          `json:"country,omitempty"`
	Container       string          `json:"container,omitempty"`
	Extension       string          `json:"extension,omitempty"`
	Category        catalog.Category `json:"category"`
	ImdbID          string          `json:"imdb_id,omitempty"`
	IsAdult         bool            `json:"is_adult"`
	InfoHash        string          `json:"info_hash"`
	IngestedAt      time.Time       `json:"ingested_at"`
}

// assignCategory mirrors the original mapping: adult content is always
// "xxx"; content with no season/episode markers is a movie; anything
// else is treated as a TV series.
func assignCategory(adult bool, seasons, episodes []int) catalog.Category {
	switch {
	case adult:
		return catalog.Category("xxx")
	case len(seasons) == 0 && len(episodes) == 0:
		return catalog.CategoryMovie
	default:
		return catalog.CategoryTVSeries
	}
}

// mapTorrentInfo builds the enriched TorrentInfo record from a raw
// hashlist entry and its parsed title.
func mapTorrentInfo(infoHash, rawTitle string, size int64, p *parser.ParsedTitle) *TorrentInfo {
	category := assignCategory(p.Adult, p.Seasons, p.Episodes)
	normalized := catalog.Normalize(p.Title)

	year := 0
	if p.Year != nil {
		year = *p.Year
	}

	return &TorrentInfo{
		RawTitle:        rawTitle,
		ParsedTitle:     p.Title,
		NormalizedTitle: normalized,
		Year:            year,
		Resolution:      p.Resolution,
		Seasons:         p.Seasons,
		Episodes:        p.Episodes,
		Complete:        p.Complete,
		Volumes:         p.Volumes,
		Languages:       p.Languages,
		Quality:         p.Quality.String(),
		HDR:             p.HDR,
		Codec:           p.Codec.String(),
		Audio:           p.Audio,
		Channels:        p.Channels,
		Dubbed:          p.Dubbed,
		Subbed:          p.Subbed,
		Date:            p.Date,
		Group:           p.Group,
		Edition:         p.Edition,
		BitDepth:        p.BitDepth,
		Bitrate:         p.Bitrate,
		Network:         p.Network.String(),
		Extended:        p.Extended,
		Converted:       p.Convert,
		Hardcoded:       p.Hardcoded,
		Region:          p.Region,
		PPV:             p.PPV,
		Is3D:            p.Is3D,
		Site:            p.Site,
		Size:            strconv.FormatInt(size, 10),
		Proper:          p.Proper,
		Repack:          p.Repack,
		Retail:          p.Retail,
		Upscaled:        p.Upscaled,
		Remastered:      p.Remastered,
		Unrated:         p.Unrated,
		Documentary:     p.Documentary,
		EpisodeCode:     p.EpisodeCode,
		Container:       p.Container,
		Extension:       p.Extension,
		Category:        category,
		IsAdult:         p.Adult,
		InfoHash:        infoHash,
		IngestedAt:      time.Now().UTC(),
	}
}
