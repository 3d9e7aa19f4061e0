// Package parser extracts structured metadata from free-form torrent release titles.
package parser

// Quality enumerates the source/rip quality of a release.
type Quality int

// Quality values, ordinal-stable for wire serialization.
const (
	QualityUnknown Quality = iota
	QualityBluRay
	QualityBluRayRemux
	QualityRemux
	QualityBRRip
	QualityBDRip
	QualityWebDL
	QualityWebRip
	QualityWebDLRip
	QualityWebMux
	QualityWeb
	QualityHDRip
	QualityUHDRip
	QualityHDTV
	QualityHDTVRip
	QualityPDTV
	QualityDVDRip
	QualityDVD
	QualityVHS
	QualityVHSRip
	QualitySATRip
	QualityTVRip
	QualityPPVRip
	QualitySCR
	QualityTeleCine
	QualityTeleSync
	QualityCam
	QualityR5
)

func (q Quality) String() string {
	switch q {
	case QualityBluRay:
		return "BluRay"
	case QualityBluRayRemux:
		return "BluRay Remux"
	case QualityRemux:
		return "Remux"
	case QualityBRRip:
		return "BRRip"
	case QualityBDRip:
		return "BDRip"
	case QualityWebDL:
		return "WEB-DL"
	case QualityWebRip:
		return "WEBRip"
	case QualityWebDLRip:
		return "WEB-DLRip"
	case QualityWebMux:
		return "WEBMux"
	case QualityWeb:
		return "WEB"
	case QualityHDRip:
		return "HDRip"
	case QualityUHDRip:
		return "UHDRip"
	case QualityHDTV:
		return "HDTV"
	case QualityHDTVRip:
		return "HDTVRip"
	case QualityPDTV:
		return "PDTV"
	case QualityDVDRip:
		return "DVDRip"
	case QualityDVD:
		return "DVD"
	case QualityVHS:
		return "VHS"
	case QualityVHSRip:
		return "VHSRip"
	case QualitySATRip:
		return "SATRip"
	case QualityTVRip:
		return "TVRip"
	case QualityPPVRip:
		return "PPVRip"
	case QualitySCR:
		return "SCR"
	case QualityTeleCine:
		return "TeleCine"
	case QualityTeleSync:
		return "TeleSync"
	case QualityCam:
		return "Cam"
	case QualityR5:
		return "R5"
	default:
		return ""
	}
}

// IsSet reports whether the quality has been assigned a concrete value.
func (q Quality) IsSet() bool { return q != QualityUnknown }

// Codec enumerates the video codec of a release.
type Codec int

// Codec values.
const (
	CodecUnknown Codec = iota
	CodecAvc
	CodecHevc
	CodecXvid
	CodecMpeg
	CodecAv1
)

func (c Codec) String() string {
	switch c {
	case CodecAvc:
		return "AVC"
	case CodecHevc:
		return "HEVC"
	case CodecXvid:
		return "Xvid"
	case CodecMpeg:
		return "MPEG"
	case CodecAv1:
		return "AV1"
	default:
		return ""
	}
}

// IsSet reports whether the codec has been assigned a concrete value.
func (c Codec) IsSet() bool { return c != CodecUnknown }

// Network enumerates the originating broadcast/streaming network of a release.
type Network int

// Network values.
const (
	NetworkUnknown Network = iota
	NetworkAppleTV
	NetworkAmazon
	NetworkNetflix
	NetworkNickelodeon
	NetworkDisney
	NetworkHBO
	NetworkHulu
	NetworkCBS
	NetworkNBC
	NetworkAMC
	NetworkPBS
	NetworkCrunchyroll
	NetworkVICE
	NetworkSony
	NetworkHallmark
	NetworkAdultSwim
	NetworkAnimalPlanet
)

func (n Network) String() string {
	switch n {
	case NetworkAppleTV:
		return "Apple TV"
	case NetworkAmazon:
		return "Amazon"
	case NetworkNetflix:
		return "Netflix"
	case NetworkNickelodeon:
		return "Nickelodeon"
	case NetworkDisney:
		return "Disney"
	case NetworkHBO:
		return "HBO"
	case NetworkHulu:
		return "Hulu"
	case NetworkCBS:
		return "CBS"
	case NetworkNBC:
		return "NBC"
	case NetworkAMC:
		return "AMC"
	case NetworkPBS:
		return "PBS"
	case NetworkCrunchyroll:
		return "Crunchyroll"
	case NetworkVICE:
		return "VICE"
	case NetworkSony:
		return "Sony"
	case NetworkHallmark:
		return "Hallmark"
	case NetworkAdultSwim:
		return "Adult Swim"
	case NetworkAnimalPlanet:
		return "Animal Planet"
	default:
		return ""
	}
}

// IsSet reports whether the network has been assigned a concrete value.
func (n Network) IsSet() bool { return n != NetworkUnknown }

// Language enumerates a spoken/subtitle language tag found in a release title.
type Language string

// Language constants. Roughly forty members, grounded in the handler
// patterns found for language/subtitle tokens (english, spanish,
// portuguese, russian, etc).
const (
	LanguageEnglish    Language = "english"
	LanguageJapanese   Language = "japanese"
	LanguageChinese    Language = "chinese"
	LanguageRussian    Language = "russian"
	LanguageArabic     Language = "arabic"
	LanguageItalian    Language = "italian"
	LanguagePortuguese Language = "portuguese"
	LanguageSpanish    Language = "spanish"
	LanguageLatino     Language = "latino"
	LanguageFrench     Language = "french"
	LanguageGerman     Language = "german"
	LanguageDutch      Language = "dutch"
	LanguageHindi      Language = "hindi"
	LanguageTelugu     Language = "telugu"
	LanguageTamil      Language = "tamil"
	LanguageMalayalam  Language = "malayalam"
	LanguageKannada    Language = "kannada"
	LanguagePunjabi    Language = "punjabi"
	LanguageMarathi    Language = "marathi"
	LanguageBengali    Language = "bengali"
	LanguagePolish     Language = "polish"
	LanguageTurkish    Language = "turkish"
	LanguageVietnamese Language = "vietnamese"
	LanguageKorean     Language = "korean"
	LanguageThai       Language = "thai"
	LanguageIndonesian Language = "indonesian"
	LanguageMalay      Language = "malay"
	LanguageSwedish    Language = "swedish"
	LanguageNorwegian  Language = "norwegian"
	LanguageDanish     Language = "danish"
	LanguageFinnish    Language = "finnish"
	LanguageHungarian  Language = "hungarian"
	LanguageCzech      Language = "czech"
	LanguageSlovak     Language = "slovak"
	LanguageGreek      Language = "greek"
	LanguageRomanian   Language = "romanian"
	LanguageBulgarian  Language = "bulgarian"
	LanguageUkrainian  Language = "ukrainian"
	LanguageHebrew     Language = "hebrew"
	LanguagePersian    Language = "persian"
	LanguageMultiSub   Language = "multi"
)

// ParsedTitle is the structured result of parsing a release title.
// Unset scalar strings are the empty string; unset enums equal their
// zero ("Unknown") value; unset sequences are nil; unset booleans default
// to false.
type ParsedTitle struct {
	Title        string
	Resolution   string
	Date         string
	Edition      string
	Region       string
	Bitrate      string
	BitDepth     string
	Group        string
	Container    string
	EpisodeCode  string
	Site         string
	Extension    string
	Size         string
	Year         *int
	Quality      Quality
	Codec        Codec
	Network      Network
	HDR          []string
	Audio        []string
	Channels     []string
	Extras       []string
	Languages    []Language
	Volumes      []int
	Seasons      []int
	Episodes     []int
	PPV          bool
	Trash        bool
	Adult        bool
	Extended     bool
	Convert      bool
	Hardcoded    bool
	Proper       bool
	Repack       bool
	Retail       bool
	Remastered   bool
	Unrated      bool
	Complete     bool
	Dubbed       bool
	Subbed       bool
	Documentary  bool
	Upscaled     bool
	Is3D         bool
	Scene        bool
}

// Match is the transient record of a single handler's most recent
// successful match within one parse call.
type Match struct {
	RawMatch   string
	MatchIndex int
}

// ErrorKind classifies a parse failure.
type ErrorKind int

// Error kinds.
const (
	ErrorKindNone ErrorKind = iota
	ErrorKindPanic
	ErrorKindOther
)

// ParseError reports why a single title failed to parse.
type ParseError struct {
	Kind    ErrorKind
	Message string
}

func (e *ParseError) Error() string { return e.Message }
