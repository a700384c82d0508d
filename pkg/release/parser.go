package release

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var videoExtensions = map[string]bool{
	".mkv": true, ".mp4": true, ".avi": true, ".m4v": true,
	".ts": true, ".wmv": true, ".mov": true, ".mpg": true,
}

var (
	yearRegex  = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)
	groupRegex = regexp.MustCompile(`-([A-Za-z0-9]+)$`)

	res2160Regex = regexp.MustCompile(`\b(2160p|4k|uhd)\b`)
	res1080Regex = regexp.MustCompile(`\b1080[pi]\b`)
	res720Regex  = regexp.MustCompile(`\b720p\b`)
	res480Regex  = regexp.MustCompile(`\b(480p|576p)\b`)

	remuxRegex    = regexp.MustCompile(`\b(bd)?remux\b`)
	blurayRegex   = regexp.MustCompile(`\b(blu-?ray|bdrip|brrip|bd25|bd50)\b`)
	webripRegex   = regexp.MustCompile(`\bweb-?rip\b`)
	webdlRegex    = regexp.MustCompile(`\b(web-?dl|web)\b`)
	hdtvRegex     = regexp.MustCompile(`\b(hdtv|pdtv)\b`)
	dvdRegex      = regexp.MustCompile(`\b(dvdrip|dvd|dvd5|dvd9)\b`)
	camRegex      = regexp.MustCompile(`\b(cam|hdcam|camrip)\b`)
	telesyncRegex = regexp.MustCompile(`\b(ts|hdts|telesync)\b`)

	x265Regex = regexp.MustCompile(`\b(x265|h ?265|hevc)\b`)
	x264Regex = regexp.MustCompile(`\b(x264|h ?264|avc)\b`)
	av1Regex  = regexp.MustCompile(`\bav1\b`)
	xvidRegex = regexp.MustCompile(`\b(xvid|divx)\b`)

	dolbyVisionRegex = regexp.MustCompile(`\b(dv|dovi|dolby ?vision)\b`)
	hdr10PlusRegex   = regexp.MustCompile(`\bhdr10(\+|plus)`)
	hdr10Regex       = regexp.MustCompile(`\bhdr10\b`)
	hlgRegex         = regexp.MustCompile(`\bhlg\b`)
	hdrRegex         = regexp.MustCompile(`\bhdr\b`)

	atmosRegex  = regexp.MustCompile(`\batmos\b`)
	truehdRegex = regexp.MustCompile(`\btrue-?hd\b`)
	dtshdRegex  = regexp.MustCompile(`\b(dts-?hd( ?ma)?|dts ?ma|dts-?x)\b`)
	dtsRegex    = regexp.MustCompile(`\bdts\b`)
	eac3Regex   = regexp.MustCompile(`\b(ddp|dd\+|e-?ac-?3)`)
	ac3Regex    = regexp.MustCompile(`\b(dd|ac-?3)(\d|\b)`)
	aacRegex    = regexp.MustCompile(`\baac`)
	flacRegex   = regexp.MustCompile(`\bflac\b`)

	properRegex = regexp.MustCompile(`\bproper\b`)
	repackRegex = regexp.MustCompile(`\b(repack|rerip)\b`)
)

// editions maps an edition pattern to its display name. Checked in order.
var editions = []struct {
	re   *regexp.Regexp
	name string
}{
	{regexp.MustCompile(`\bdirector'?s? ?cut\b`), "Directors Cut"},
	{regexp.MustCompile(`\bextended( cut| edition)?\b`), "Extended"},
	{regexp.MustCompile(`\bimax\b`), "IMAX"},
	{regexp.MustCompile(`\bunrated\b`), "Unrated"},
	{regexp.MustCompile(`\btheatrical\b`), "Theatrical"},
	{regexp.MustCompile(`\bremastered\b`), "Remastered"},
	{regexp.MustCompile(`\bcriterion\b`), "Criterion"},
}

// groupFalsePositives are suffixes that look like a group but belong to a source tag.
var groupFalsePositives = map[string]bool{"dl": true, "rip": true, "ray": true}

// Parse extracts movie release information from a file name, folder name or
// download client title. Paths are reduced to their base name and known video
// extensions are dropped.
func Parse(name string) Info {
	name = filepath.Base(strings.TrimSpace(name))
	if ext := filepath.Ext(name); videoExtensions[strings.ToLower(ext)] {
		name = strings.TrimSuffix(name, ext)
	}

	info := Info{Name: name}
	if name == "" || name == "." {
		info.Name = ""
		return info
	}

	if m := groupRegex.FindStringSubmatch(name); m != nil && !groupFalsePositives[strings.ToLower(m[1])] {
		info.Group = m[1]
	}

	spaced := normalizeSeparators(name)
	lower := lowerASCII(spaced)

	info.Resolution = parseResolution(lower)
	info.IsRemux = remuxRegex.MatchString(lower)
	info.Source = parseSource(lower)
	if info.IsRemux && info.Source == SourceUnknown {
		info.Source = SourceBluRay
	}
	info.Codec = parseCodec(lower)
	info.HDR = parseHDR(lower)
	info.Audio = parseAudio(lower)
	info.Proper = properRegex.MatchString(lower)
	info.Repack = repackRegex.MatchString(lower)
	for _, e := range editions {
		if e.re.MatchString(lower) {
			info.Edition = e.name
			break
		}
	}

	var cut int
	info.Title, info.Year, cut = parseTitleYear(spaced, lower)
	info.Tags = strings.TrimSpace(spaced[cut:])
	info.CleanTitle = CleanTitle(info.Title)
	return info
}

// normalizeSeparators turns scene separators into spaces, keeping hyphens.
func normalizeSeparators(s string) string {
	r := strings.NewReplacer(".", " ", "_", " ", "(", " ", ")", " ", "[", " ", "]", " ")
	return strings.Join(strings.Fields(r.Replace(s)), " ")
}

// parseTitleYear takes the title as the text before the release year. The
// last year-like token that is not at the start wins, so "2001 A Space Odyssey
// 1968" keeps its title. Without a year the title ends at the first quality tag.
// The returned offset is where the title ends in spaced.
func parseTitleYear(spaced, lower string) (string, int, int) {
	locs := yearRegex.FindAllStringIndex(lower, -1)
	for i := len(locs) - 1; i >= 0; i-- {
		start, end := locs[i][0], locs[i][1]
		if start == 0 {
			continue
		}
		year, err := strconv.Atoi(lower[start:end])
		if err != nil {
			continue
		}
		return trimTitle(spaced[:start]), year, start
	}

	cut := len(lower)
	for _, re := range []*regexp.Regexp{res2160Regex, res1080Regex, res720Regex, res480Regex, remuxRegex, blurayRegex, webripRegex, webdlRegex, hdtvRegex, dvdRegex} {
		if loc := re.FindStringIndex(lower); loc != nil && loc[0] > 0 && loc[0] < cut {
			cut = loc[0]
		}
	}
	return trimTitle(spaced[:cut]), 0, cut
}

// lowerASCII lowercases ASCII letters only so byte offsets in the result
// line up with the input.
func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

func trimTitle(s string) string {
	return strings.TrimSpace(strings.TrimRight(strings.TrimSpace(s), "-"))
}

func parseResolution(s string) Resolution {
	switch {
	case res2160Regex.MatchString(s):
		return Resolution2160p
	case res1080Regex.MatchString(s):
		return Resolution1080p
	case res720Regex.MatchString(s):
		return Resolution720p
	case res480Regex.MatchString(s):
		return Resolution480p
	default:
		return ResolutionUnknown
	}
}

func parseSource(s string) Source {
	switch {
	case blurayRegex.MatchString(s):
		return SourceBluRay
	case webripRegex.MatchString(s):
		return SourceWEBRip
	case webdlRegex.MatchString(s):
		return SourceWEBDL
	case hdtvRegex.MatchString(s):
		return SourceHDTV
	case dvdRegex.MatchString(s):
		return SourceDVD
	case camRegex.MatchString(s):
		return SourceCAM
	case telesyncRegex.MatchString(s):
		return SourceTelesync
	default:
		return SourceUnknown
	}
}

func parseCodec(s string) Codec {
	switch {
	case x265Regex.MatchString(s):
		return CodecX265
	case x264Regex.MatchString(s):
		return CodecX264
	case av1Regex.MatchString(s):
		return CodecAV1
	case xvidRegex.MatchString(s):
		return CodecXviD
	default:
		return CodecUnknown
	}
}

func parseHDR(s string) HDRFormat {
	switch {
	case dolbyVisionRegex.MatchString(s):
		return DolbyVision
	case hdr10PlusRegex.MatchString(s):
		return HDR10Plus
	case hdr10Regex.MatchString(s):
		return HDR10
	case hlgRegex.MatchString(s):
		return HLG
	case hdrRegex.MatchString(s):
		return HDRGeneric
	default:
		return HDRNone
	}
}

func parseAudio(s string) AudioCodec {
	switch {
	case atmosRegex.MatchString(s):
		return AudioAtmos
	case truehdRegex.MatchString(s):
		return AudioTrueHD
	case dtshdRegex.MatchString(s):
		return AudioDTSHD
	case dtsRegex.MatchString(s):
		return AudioDTS
	case eac3Regex.MatchString(s):
		return AudioEAC3
	case ac3Regex.MatchString(s):
		return AudioAC3
	case flacRegex.MatchString(s):
		return AudioFLAC
	case aacRegex.MatchString(s):
		return AudioAAC
	default:
		return AudioUnknown
	}
}
