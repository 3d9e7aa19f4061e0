package parser

// DefaultHandlers builds the declarative, ordered handler table run by
// every Parse call. Order matters: strong unambiguous signals (adult,
// resolution, explicit year/date, edition) run first and narrow the
// title window; weak, permissive patterns (season/episode heuristics,
// language words, network tags) run late so they only see what survives.
//
//nolint:funlen // declarative table, one line per concept by design
func DefaultHandlers() []*Handler {
	var h []*Handler

	remove := func(o RegexHandlerOptions) RegexHandlerOptions { o.Remove = true; return o }
	skipTitle := func(o RegexHandlerOptions) RegexHandlerOptions { o.SkipFromTitle = true; return o }
	removeSkip := func(o RegexHandlerOptions) RegexHandlerOptions {
		o.Remove = true
		o.SkipFromTitle = true
		return o
	}
	first := func(o RegexHandlerOptions) RegexHandlerOptions { o.SkipIfFirst = true; return o }
	// sequence marks fields that accumulate more than one value per parse
	// (hdr, channels, audio, languages): once set, later handlers for the
	// same field must still run so e.g. both "DV" and "HDR" can land in
	// HDR, matching skip_if_already_found: false on these handlers.
	sequence := func(o RegexHandlerOptions) RegexHandlerOptions { o.SkipIfAlreadyFound = false; return o }

	// --- adult / scene / ppv / trash -------------------------------------------------
	h = append(h,
		newHandler("adult", `(?i)\b(xxx|porn|adult)\b`, boolField(func(p *ParsedTitle) *bool { return &p.Adult }), boolTrue, removeSkip(defaultOptions())),
		newHandler("scene", `(?i)\bscene\b`, boolField(func(p *ParsedTitle) *bool { return &p.Scene }), boolTrue, skipTitle(defaultOptions())),
		newHandler("ppv", `(?i)\bppv\b`, boolField(func(p *ParsedTitle) *bool { return &p.PPV }), boolTrue, removeSkip(defaultOptions())),
		newHandler("trash.acesse", `(?i)acesse\s+o\s+original`, boolField(func(p *ParsedTitle) *bool { return &p.Trash }), boolTrue, removeSkip(defaultOptions())),
		newHandler("trash.cam", `(?i)\bcam\s*-?\s*rip\b`, boolField(func(p *ParsedTitle) *bool { return &p.Trash }), boolTrue, defaultOptions()),
	)

	// --- site -------------------------------------------------------------------------
	h = append(h,
		newHandler("site", `(?i)^\[\s*([a-z0-9.\-]+\.[a-z]{2,})\s*\]`, stringField(func(p *ParsedTitle) *string { return &p.Site }), identity, removeSkip(defaultOptions())),
		newHandler("site.www", `(?i)\bwww\.[a-z0-9.\-]+\.[a-z]{2,}\b`, stringField(func(p *ParsedTitle) *string { return &p.Site }), identity, remove(defaultOptions())),
	)

	// --- resolution ---------------------------------------------------------------------
	resField := func(p *ParsedTitle) *string { return &p.Resolution }
	h = append(h,
		newHandler("resolution.pixels", `(?i)\b(3840x2160|1920x1080|1280x720|720x480|640x480)\b`, resField, resolutionTransform, defaultOptions()),
		newHandler("resolution.p", `(?i)\b(\d{3,4}p)\b`, resField, resolutionTransform, defaultOptions()),
		newHandler("resolution.i", `(?i)\b(\d{3,4}i)\b`, resField, resolutionTransform, defaultOptions()),
		newHandler("resolution.4k", `(?i)\b(4k|uhd|2160p)\b`, resField, resolutionTransform, defaultOptions()),
		newHandler("resolution.8k", `(?i)\b(8k|4320p)\b`, resField, resolutionTransform, defaultOptions()),
		newHandler("resolution.qhd", `(?i)\bqhd\b`, resField, resolutionTransform, defaultOptions()),
		newHandler("resolution.fhd", `(?i)\bfhd\b`, resField, resolutionTransform, defaultOptions()),
		newHandler("resolution.bdhdm2160", `(?i)\b(?:bd|hd|m)(2160p?)\b`, resField, resolutionTransform, defaultOptions()),
		newHandler("resolution.bdhdm1080", `(?i)\b(?:bd|hd|m)(1080p?)\b`, resField, resolutionTransform, defaultOptions()),
		newHandler("resolution.bdhdm720", `(?i)\b(?:bd|hd|m)(720p?)\b`, resField, resolutionTransform, defaultOptions()),
		newHandler("resolution.hd", `(?i)\bhd\b`, resField, resolutionTransform, first(defaultOptions())),
	)

	// --- date / year --------------------------------------------------------------------
	h = append(h,
		newHandler("date.ymd", `(?i)\b(\d{4}[.\-/]\d{2}[.\-/]\d{2})\b`, stringField(func(p *ParsedTitle) *string { return &p.Date }), dateTransform, defaultOptions()),
		newHandler("date.mdy", `(?i)\b(\d{2}[.\-]\d{2}[.\-]\d{4})\b`, stringField(func(p *ParsedTitle) *string { return &p.Date }), dateTransform, defaultOptions()),
		newHandler("date.words", `(?i)\b((?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2}\s+\d{4})\b`, stringField(func(p *ParsedTitle) *string { return &p.Date }), dateTransform, defaultOptions()),
		newHandler("year.paren", `(?i)[([]((?:19|20)\d{2})[)\]]`, yearField(), yearTransform, yearOptions()),
		newHandler("year.bare", `(?i)\b((?:19|20)\d{2})\b(?!.*\b(?:19|20)\d{2}\b)`, yearField(), yearTransform, yearOptions()),
	)

	// --- edition ---------------------------------------------------------------------
	editionField := func(p *ParsedTitle) *string { return &p.Edition }
	for _, e := range []struct{ name, pattern, value string }{
		{"edition.anniversary", `(?i)\b\d+th\.?\s*Anniversary\b`, "Anniversary Edition"},
		{"edition.ultimate", `(?i)\bUltimate\s*Edition\b`, "Ultimate Edition"},
		{"edition.directors", `(?i)\bDirector'?s?\s*Cut\b`, "Director's Cut"},
		{"edition.extended", `(?i)\bExtended\s*(Cut|Edition)?\b`, "Extended Edition"},
		{"edition.collectors", `(?i)\bCollector'?s?\s*Edition\b`, "Collector's Edition"},
		{"edition.theatrical", `(?i)\bTheatrical\s*(Cut|Edition)?\b`, "Theatrical Cut"},
		{"edition.uncut", `(?i)\bUncut\b`, "Uncut"},
		{"edition.imax", `(?i)\bIMAX\b`, "IMAX"},
		{"edition.diamond", `(?i)\bDiamond\s*(Luxe)?\s*Edition\b`, "Diamond Edition"},
		{"edition.remastered", `(?i)\bRemastered\s*Edition\b`, "Remastered Edition"},
	} {
		h = append(h, newHandler(e.name, e.pattern, editionField, replaceValue(e.value), defaultOptions()))
	}

	// --- booleans: upscaled/convert/hardcoded/proper/repack/retail/remastered/documentary/unrated/region
	h = append(h,
		newHandler("upscaled", `(?i)\bupscal(ed?|ing)\b`, boolField(func(p *ParsedTitle) *bool { return &p.Upscaled }), boolTrue, defaultOptions()),
		newHandler("convert", `(?i)\bconvert\b`, boolField(func(p *ParsedTitle) *bool { return &p.Convert }), boolTrue, defaultOptions()),
		newHandler("hardcoded", `(?i)\bhc\b|\bhardcoded\b`, boolField(func(p *ParsedTitle) *bool { return &p.Hardcoded }), boolTrue, defaultOptions()),
		newHandler("proper", `(?i)\bproper\b`, boolField(func(p *ParsedTitle) *bool { return &p.Proper }), boolTrue, defaultOptions()),
		newHandler("repack", `(?i)\brepack\d*\b`, boolField(func(p *ParsedTitle) *bool { return &p.Repack }), boolTrue, defaultOptions()),
		newHandler("retail", `(?i)\bretail\b`, boolField(func(p *ParsedTitle) *bool { return &p.Retail }), boolTrue, defaultOptions()),
		newHandler("remastered", `(?i)\bremaster(ed)?\b`, boolField(func(p *ParsedTitle) *bool { return &p.Remastered }), boolTrue, defaultOptions()),
		newHandler("documentary", `(?i)\bdocu(mentary)?\b`, boolField(func(p *ParsedTitle) *bool { return &p.Documentary }), boolTrue, defaultOptions()),
		newHandler("unrated", `(?i)\bunrated\b`, boolField(func(p *ParsedTitle) *bool { return &p.Unrated }), boolTrue, defaultOptions()),
		newHandler("extended", `(?i)\bextended\b`, boolField(func(p *ParsedTitle) *bool { return &p.Extended }), boolTrue, defaultOptions()),
		newHandler("region", `(?i)\bR([0-9])\b`, stringField(func(p *ParsedTitle) *string { return &p.Region }), identity, defaultOptions()),
	)

	// --- quality: TeleSync/TeleCine/PDTV/CAM/SCR/... -------------------------------------
	qField := func(p *ParsedTitle) *Quality { return &p.Quality }
	for _, q := range []struct {
		name, pattern string
		value          Quality
	}{
		{"quality.bluray_remux", `(?i)\bblu-?ray\s*remux\b`, QualityBluRayRemux},
		{"quality.remux", `(?i)\bremux\b`, QualityRemux},
		{"quality.bluray", `(?i)\bblu-?ray\b|\bbd\b`, QualityBluRay},
		{"quality.brrip", `(?i)\bbrrip\b`, QualityBRRip},
		{"quality.bdrip", `(?i)\bbdrip\b`, QualityBDRip},
		{"quality.webdlrip", `(?i)\bweb-?dlrip\b`, QualityWebDLRip},
		{"quality.webdl", `(?i)\bweb-?dl\b`, QualityWebDL},
		{"quality.webrip", `(?i)\bwebrip\b`, QualityWebRip},
		{"quality.webmux", `(?i)\bwebmux\b`, QualityWebMux},
		{"quality.web", `(?i)\bweb\b`, QualityWeb},
		{"quality.hdrip", `(?i)\bhdrip\b`, QualityHDRip},
		{"quality.uhdrip", `(?i)\buhdrip\b`, QualityUHDRip},
		{"quality.hdtvrip", `(?i)\bhdtvrip\b`, QualityHDTVRip},
		{"quality.hdtv", `(?i)\bhdtv\b`, QualityHDTV},
		{"quality.pdtv", `(?i)\bpdtv\b`, QualityPDTV},
		{"quality.dvdrip", `(?i)\bdvdrip\b`, QualityDVDRip},
		{"quality.dvd", `(?i)\bdvd\b`, QualityDVD},
		{"quality.vhsrip", `(?i)\bvhsrip\b`, QualityVHSRip},
		{"quality.vhs", `(?i)\bvhs\b`, QualityVHS},
		{"quality.satrip", `(?i)\bsatrip\b|\bdvbrip\b`, QualitySATRip},
		{"quality.tvrip", `(?i)\btvrip\b`, QualityTVRip},
		{"quality.ppvrip", `(?i)\bppvrip\b`, QualityPPVRip},
		{"quality.scr", `(?i)\bscr(eener)?\b|\bprescreener\b`, QualitySCR},
		{"quality.telecine", `(?i)\btc\b|\btelecine\b`, QualityTeleCine},
		{"quality.telesync", `(?i)\bts\b|\btelesync\b`, QualityTeleSync},
		{"quality.cam", `(?i)\bcam\b|\bhdcam\b`, QualityCam},
		{"quality.r5", `(?i)\br5\b`, QualityR5},
	} {
		h = append(h, newHandler(q.name, q.pattern, qField, replaceValue(q.value), defaultOptions()))
	}

	// --- bit depth / bitrate -----------------------------------------------------------
	h = append(h,
		newHandler("bitdepth.hevc10", `(?i)\bhevc\s*10\b|\bhi10p?\b`, stringField(func(p *ParsedTitle) *string { return &p.BitDepth }), replaceValue("10bit"), defaultOptions()),
		newHandler("bitdepth.10", `(?i)\b10\s*-?\s*bit\b`, stringField(func(p *ParsedTitle) *string { return &p.BitDepth }), replaceValue("10bit"), defaultOptions()),
		newHandler("bitdepth.8", `(?i)\b8\s*-?\s*bit\b`, stringField(func(p *ParsedTitle) *string { return &p.BitDepth }), replaceValue("8bit"), defaultOptions()),
		newHandler("bitrate.kbps", `(?i)\b(\d{2,4})\s*kbps\b`, stringField(func(p *ParsedTitle) *string { return &p.Bitrate }), kbps, defaultOptions()),
		newHandler("bitrate.mbps", `(?i)\b(\d{1,3})\s*mbps\b`, stringField(func(p *ParsedTitle) *string { return &p.Bitrate }), mbps, defaultOptions()),
	)

	// --- hdr -----------------------------------------------------------------------------
	hdrField := func(p *ParsedTitle) *[]string { return &p.HDR }
	for _, hh := range []struct{ name, pattern, value string }{
		{"hdr.dv", `(?i)\b(dolby\s*vision|dv)\b`, "DV"},
		{"hdr.hdr10plus", `(?i)\bhdr10\+\b`, "HDR10+"},
		{"hdr.hdr10", `(?i)\bhdr10\b`, "HDR10"},
		{"hdr.hdr", `(?i)\bhdr\b`, "HDR"},
		{"hdr.sdr", `(?i)\bsdr\b`, "SDR"},
	} {
		h = append(h, newHandler(hh.name, hh.pattern, hdrField, uniqSliceValue(hh.value), sequence(defaultOptions())))
	}

	// --- codec --------------------------------------------------------------------------
	codecField := func(p *ParsedTitle) *Codec { return &p.Codec }
	for _, c := range []struct {
		name, pattern string
		value          Codec
	}{
		{"codec.hevc", `(?i)\b(hevc|x265|h\.?265)\b`, CodecHevc},
		{"codec.avc", `(?i)\b(avc|x264|h\.?264)\b`, CodecAvc},
		{"codec.xvid", `(?i)\bxvid\b`, CodecXvid},
		{"codec.divx", `(?i)\bdivx\b`, CodecXvid},
		{"codec.av1", `(?i)\bav1\b`, CodecAv1},
		{"codec.mpeg", `(?i)\bmpeg-?[24]?\b`, CodecMpeg},
	} {
		h = append(h, newHandler(c.name, c.pattern, codecField, replaceValue(c.value), defaultOptions()))
	}

	// --- channels -------------------------------------------------------------------------
	chField := func(p *ParsedTitle) *[]string { return &p.Channels }
	for _, c := range []struct{ name, pattern, value string }{
		{"channels.ddp51", `(?i)\bddp\s*5\.1\b`, "5.1"},
		{"channels.71", `(?i)\b7\.1\b`, "7.1"},
		{"channels.51", `(?i)\b5\.1\b`, "5.1"},
		{"channels.20", `(?i)\b2\.0\b`, "2.0"},
		{"channels.stereo", `(?i)\bstereo\b`, "2.0"},
		{"channels.mono", `(?i)\bmono\b`, "1.0"},
	} {
		h = append(h, newHandler(c.name, c.pattern, chField, uniqSliceValue(c.value), sequence(defaultOptions())))
	}

	// channel->audio dependency quirk kept for test parity per §9: seeing
	// 5.1 channels also implies a bare AC3 audio tag if nothing else set it.
	h = append(h, newHandler("audio.ac3_from_channels", `(?i)\b5\.1\b`,
		func(p *ParsedTitle) *[]string { return &p.Audio },
		uniqSliceValue("AC3"), sequence(defaultOptions())))

	// --- audio -----------------------------------------------------------------------------
	audioField := func(p *ParsedTitle) *[]string { return &p.Audio }
	for _, a := range []struct{ name, pattern, value string }{
		{"audio.ddp", `(?i)\bddp\s*5\.1\b|\be-?ac-?3\b`, "Dolby Digital Plus"},
		{"audio.dtshdma", `(?i)\bdts-?hd\.?ma\b`, "DTS Lossless"},
		{"audio.dts", `(?i)\bdts\b`, "DTS Lossy"},
		{"audio.atmos", `(?i)\batmos\b`, "Atmos"},
		{"audio.truehd", `(?i)\btrue-?hd\b`, "TrueHD"},
		{"audio.flac", `(?i)\bflac\b`, "FLAC"},
		{"audio.eac3", `(?i)\beac3\b`, "EAC3"},
		{"audio.ac3", `(?i)\bac-?3\b`, "AC3"},
		{"audio.dd", `(?i)\bdd\b`, "Dolby Digital"},
		{"audio.dolbyd", `(?i)\bdolbyd\b`, "Dolby Digital"},
		{"audio.true", `(?i)\btrue\b`, "TrueHD"},
		{"audio.aac", `(?i)\baac\b`, "AAC"},
		{"audio.hqcleanaudio", `(?i)\bhq\s*clean\s*audio\b`, "HQ Clean Audio"},
		{"audio.mp3", `(?i)\bmp3\b`, "MP3"},
	} {
		h = append(h, newHandler(a.name, a.pattern, audioField, uniqSliceValue(a.value), sequence(defaultOptions())))
	}

	// --- extras (ordered-sequence field: a release can carry more than
	// one bonus-content tag) -----------------------------------------------------------------
	extrasField := func(p *ParsedTitle) *[]string { return &p.Extras }
	for _, e := range []struct{ name, pattern, value string }{
		{"extras.nced", `(?i)\bNCED\b`, "NCED"},
		{"extras.ncop", `(?i)\bNCOP\b`, "NCOP"},
		{"extras.deletedscene", `(?i)\b(deleted[ .-]*)?scenes?\b`, "Deleted Scene"},
		{"extras.featurette", `(?i)\bfeaturettes?\b`, "Featurette"},
		{"extras.sample", `(?i)\bsample\b`, "Sample"},
		{"extras.trailer", `(?i)\btrailers?\b`, "Trailer"},
		{"extras.bonus", `(?i)\bbonus\b`, "Bonus"},
		{"extras.behindthescenes", `(?i)\bbehind[ .-]*the[ .-]*scenes?\b`, "Behind The Scenes"},
		{"extras.interview", `(?i)\binterviews?\b`, "Interview"},
	} {
		h = append(h, newHandler(e.name, e.pattern, extrasField, uniqSliceValue(e.value), sequence(defaultOptions())))
	}

	// --- group / container ------------------------------------------------------------------
	h = append(h,
		newHandler("group.dash", `(?i)-\s*([A-Za-z0-9][A-Za-z0-9.]*?)\s*$`, stringField(func(p *ParsedTitle) *string { return &p.Group }), identity, removeSkip(defaultOptions())),
		newHandler("group.bracket", `(?i)\[([A-Za-z0-9_\-]{2,})\]\s*$`, stringField(func(p *ParsedTitle) *string { return &p.Group }), identity, removeSkip(defaultOptions())),
		newHandler("group.erairaws", `(?i)\[Erai-raws\]`, stringField(func(p *ParsedTitle) *string { return &p.Group }), replaceValue("Erai-raws"), removeSkip(defaultOptions())),
		newHandler("container", `(?i)\.(mkv|avi|mp4|wmv|mov|flv|ts|m2ts|vob)$`, stringField(func(p *ParsedTitle) *string { return &p.Container }), identity, defaultOptions()),
		newHandler("extension", `(?i)\.(mkv|avi|mp4|wmv|mov|flv|ts|m2ts|vob|srt|sub|idx)$`, stringField(func(p *ParsedTitle) *string { return &p.Extension }), identity, defaultOptions()),
	)

	// --- volumes / complete ------------------------------------------------------------------
	h = append(h,
		newHandler("volumes.range", `(?i)\bvol(?:ume)?s?\.?\s*(\d+[-~]\d+)\b`, intSliceField(func(p *ParsedTitle) *[]int { return &p.Volumes }), rangeAccumulate, defaultOptions()),
		newHandler("volumes.single", `(?i)\bvol(?:ume)?\.?\s*(\d+)\b`, intSliceField(func(p *ParsedTitle) *[]int { return &p.Volumes }), singleIntSlice, defaultOptions()),
	)
	for _, c := range []struct{ name, pattern string }{
		{"complete.boxset", `(?i)\bbox-?set\b`},
		{"complete.miniseries", `(?i)\bmini-?series\b`},
		{"complete.collection", `(?i)\bcollection\b`},
		{"complete.trilogy", `(?i)\btrilogy\b|\bsaga\b`},
		{"complete.temporadas", `(?i)\btemporadas?\s*completa\b`},
	} {
		h = append(h, newHandler(c.name, c.pattern, boolField(func(p *ParsedTitle) *bool { return &p.Complete }), boolTrue, defaultOptions()))
	}

	// --- seasons ---------------------------------------------------------------------------
	seasonField := func(p *ParsedTitle) *[]int { return &p.Seasons }
	h = append(h,
		newHandler("season.range", `(?i)\bs(\d{1,2})[\-~](\d{1,2})\b`, seasonField, rangeAccumulate, defaultOptions()),
		newHandler("season.sxxeyy", `(?i)\bs(\d{1,2})e\d{1,3}\b`, seasonField, singleCaptureIntSlice, defaultOptions()),
		newHandler("season.word", `(?i)\bseason\s*(\d{1,2})\b`, seasonField, singleIntSlice, defaultOptions()),
		newHandler("season.temporada", `(?i)\btemporada\s*(\d{1,2})\b`, seasonField, singleIntSlice, defaultOptions()),
	)

	// --- episodes --------------------------------------------------------------------------
	episodeField := func(p *ParsedTitle) *[]int { return &p.Episodes }
	h = append(h,
		newHandler("episode.range", `(?i)\be(\d{1,3})[\-~](\d{1,3})\b`, episodeField, rangeAccumulate, defaultOptions()),
		newHandler("episode.sxxeyy", `(?i)\bs\d{1,2}e(\d{1,3})\b`, episodeField, singleIntSlice, defaultOptions()),
		newHandler("episode.word", `(?i)\bep(?:isode)?\.?\s*(\d{1,3})\b`, episodeField, singleIntSlice, defaultOptions()),
		newHandler("episode.code", `(?i)\b([A-Z]{2,4}\d{2,4})\b`, stringField(func(p *ParsedTitle) *string { return &p.EpisodeCode }), identity, defaultOptions()),
	)

	// --- languages ---------------------------------------------------------------------------
	// One handler per Language constant, grounded on parser_handlers.rs's
	// "languages" category (the simple word-form variant of each entry;
	// the lookaround-heavy subtitle-track disambiguation variants for
	// ISO two-letter codes like bare "es"/"de"/"pt" are not ported).
	langField := func(p *ParsedTitle) *[]Language { return &p.Languages }
	for _, l := range []struct{ name, pattern string; value Language }{
		{"lang.english", `(?i)\b(eng(lish)?|engsub|esub)\b`, LanguageEnglish},
		{"lang.spanish", `(?i)\b(spanish|espanol|castellano)\b`, LanguageSpanish},
		{"lang.latino", `(?i)\blatino\b`, LanguageLatino},
		{"lang.portuguese", `(?i)\b(portuguese|portugues|dublado)\b`, LanguagePortuguese},
		{"lang.russian", `(?i)\brus(sian)?\b`, LanguageRussian},
		{"lang.french", `(?i)\b(french|vostfr|truefrench)\b`, LanguageFrench},
		{"lang.german", `(?i)\b(german|alemao)\b`, LanguageGerman},
		{"lang.dutch", `(?i)\b(dutch|flemish)\b`, LanguageDutch},
		{"lang.italian", `(?i)\b(italian|italiano)\b`, LanguageItalian},
		{"lang.japanese", `(?i)\bjapanese\b|\bjpn\b`, LanguageJapanese},
		{"lang.korean", `(?i)\bkorean\b`, LanguageKorean},
		{"lang.chinese", `(?i)\bchinese\b|\bmandarin\b`, LanguageChinese},
		{"lang.hindi", `(?i)\bhin(di)?\b`, LanguageHindi},
		{"lang.telugu", `(?i)\btelugu\b`, LanguageTelugu},
		{"lang.tamil", `(?i)\btam(il)?\b`, LanguageTamil},
		{"lang.malayalam", `(?i)\bmalayalam\b`, LanguageMalayalam},
		{"lang.kannada", `(?i)\bkannada\b`, LanguageKannada},
		{"lang.punjabi", `(?i)\bpunjabi\b`, LanguagePunjabi},
		{"lang.marathi", `(?i)\bmarathi\b`, LanguageMarathi},
		{"lang.bengali", `(?i)\bbengali\b`, LanguageBengali},
		{"lang.polish", `(?i)\b(polish|polaco)\b`, LanguagePolish},
		{"lang.turkish", `(?i)\b(turkish|turco)\b`, LanguageTurkish},
		{"lang.vietnamese", `(?i)\bvietnamese\b`, LanguageVietnamese},
		{"lang.thai", `(?i)\b(thai|tailandes)\b`, LanguageThai},
		{"lang.indonesian", `(?i)\bindonesian\b`, LanguageIndonesian},
		{"lang.malay", `(?i)\bmalay\b`, LanguageMalay},
		{"lang.swedish", `(?i)\b(swedish|sueco)\b`, LanguageSwedish},
		{"lang.norwegian", `(?i)\bnorwegian\b`, LanguageNorwegian},
		{"lang.danish", `(?i)\b(danish|dinamarques)\b`, LanguageDanish},
		{"lang.finnish", `(?i)\bfinnish\b`, LanguageFinnish},
		{"lang.hungarian", `(?i)\bhun(garian)?\b`, LanguageHungarian},
		{"lang.czech", `(?i)\bczech\b`, LanguageCzech},
		{"lang.slovak", `(?i)\bslovak(ian)?\b`, LanguageSlovak},
		{"lang.greek", `(?i)\bgreek\b`, LanguageGreek},
		{"lang.romanian", `(?i)\bromanian\b`, LanguageRomanian},
		{"lang.bulgarian", `(?i)\bbulgarian\b`, LanguageBulgarian},
		{"lang.ukrainian", `(?i)\bukrainian\b`, LanguageUkrainian},
		{"lang.hebrew", `(?i)\bheb(rew)?\b`, LanguageHebrew},
		{"lang.persian", `(?i)\b(persian|persa)\b`, LanguagePersian},
		{"lang.arabic", `(?i)\barabic\b`, LanguageArabic},
		{"lang.multi", `(?i)\bmulti\b`, LanguageMultiSub},
	} {
		h = append(h, newHandler(l.name, l.pattern, langField, uniqLangValue(l.value), sequence(defaultOptions())))
	}
	h = append(h,
		newHandler("dubbed", `(?i)\bdubbed\b|\bdublado\b`, boolField(func(p *ParsedTitle) *bool { return &p.Dubbed }), boolTrue, defaultOptions()),
		newHandler("subbed", `(?i)\bsubbed\b|\blegendado\b`, boolField(func(p *ParsedTitle) *bool { return &p.Subbed }), boolTrue, defaultOptions()),
	)

	// --- network ----------------------------------------------------------------------------
	netField := func(p *ParsedTitle) *Network { return &p.Network }
	for _, n := range []struct {
		name, pattern string
		value          Network
	}{
		{"network.atvp", `(?i)\batvp\b`, NetworkAppleTV},
		{"network.amzn", `(?i)\bamzn\b|\bamazon\b`, NetworkAmazon},
		{"network.netflix", `(?i)\bnf\b|\bnetflix\b`, NetworkNetflix},
		{"network.nick", `(?i)\bnick\b`, NetworkNickelodeon},
		{"network.dsnyp", `(?i)\bdsnyp\b|\bdisney\+?\b`, NetworkDisney},
		{"network.hbo", `(?i)\bhmax\b|\bhbo\b`, NetworkHBO},
		{"network.hulu", `(?i)\bhulu\b`, NetworkHulu},
		{"network.cbs", `(?i)\bcbs\b`, NetworkCBS},
		{"network.nbc", `(?i)\bnbc\b`, NetworkNBC},
		{"network.amc", `(?i)\bamc\b`, NetworkAMC},
		{"network.pbs", `(?i)\bpbs\b`, NetworkPBS},
		{"network.crunchyroll", `(?i)\bcr\b|\bcrunchyroll\b`, NetworkCrunchyroll},
		{"network.vice", `(?i)\bvice\b`, NetworkVICE},
		{"network.sony", `(?i)\bsony\b`, NetworkSony},
		{"network.hallmark", `(?i)\bhallmark\b`, NetworkHallmark},
		{"network.adultswim", `(?i)\badult\s*swim\b`, NetworkAdultSwim},
		{"network.animalplanet", `(?i)\banpl\b|\banimal\s*planet\b`, NetworkAnimalPlanet},
	} {
		h = append(h, newHandler(n.name, n.pattern, netField, replaceValue(n.value), defaultOptions()))
	}

	// --- 3d ---------------------------------------------------------------------------------
	h = append(h,
		newHandler("3d.tag", `(?i)\b3d\b`, boolField(func(p *ParsedTitle) *bool { return &p.Is3D }), boolTrue, first(defaultOptions())),
		newHandler("3d.sbs", `(?i)\bhsbs\b|\bhalf-?sbs\b|\bsbs\b`, boolField(func(p *ParsedTitle) *bool { return &p.Is3D }), boolTrue, defaultOptions()),
	)

	// --- size ---------------------------------------------------------------------------------
	h = append(h,
		newHandler("size", `(?i)\b(\d+(?:\.\d+)?\s*[MGT]B)\b`, stringField(func(p *ParsedTitle) *string { return &p.Size }), sizeTransform, defaultOptions()),
	)

	return h
}

func boolField(get func(*ParsedTitle) *bool) func(*ParsedTitle) *bool { return get }
func stringField(get func(*ParsedTitle) *string) func(*ParsedTitle) *string { return get }
func intSliceField(get func(*ParsedTitle) *[]int) func(*ParsedTitle) *[]int { return get }

// yearField exposes the optional Year field itself as the handler's T,
// so isSetAny(*int) correctly reports "unset" as nil rather than zero.
func yearField() func(*ParsedTitle) **int {
	return func(p *ParsedTitle) **int { return &p.Year }
}

// yearOptions allows a later valid year to overwrite an earlier one,
// matching the "later valid wins" ambiguous-year scenario from §8.
func yearOptions() RegexHandlerOptions {
	o := defaultOptions()
	o.SkipIfAlreadyFound = false
	return o
}

func uniqSliceValue(v string) func(string, []string) ([]string, bool) {
	return func(string, current []string) ([]string, bool) {
		return uniqAppendString(current, v), true
	}
}

func uniqLangValue(v Language) func(string, []Language) ([]Language, bool) {
	return func(string, current []Language) ([]Language, bool) {
		return uniqAppendLanguage(current, v), true
	}
}

func singleIntSlice(raw string, current []int) ([]int, bool) {
	n, ok := parseIntTransform(raw)
	if !ok {
		return current, false
	}
	return uniqAppendInt(current, n), true
}

func singleCaptureIntSlice(raw string, current []int) ([]int, bool) {
	return singleIntSlice(raw, current)
}

func rangeAccumulate(raw string, current []int) ([]int, bool) {
	expanded, ok := rangeTransform(raw)
	if !ok {
		return current, false
	}
	for _, n := range expanded {
		current = uniqAppendInt(current, n)
	}
	return current, true
}

func kbps(raw string, _ string) (string, bool)  { return bitrateString(raw, "Kbps") }
func mbps(raw string, _ string) (string, bool)  { return bitrateString(raw, "Mbps") }
