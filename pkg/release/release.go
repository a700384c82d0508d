// Package release parses media release names into structured metadata.
package release

import "strings"

// Resolution represents the video resolution of a release.
type Resolution int

const (
	ResolutionUnknown Resolution = iota
	Resolution480p
	Resolution720p
	Resolution1080p
	Resolution2160p
)

// unknownStr is the string representation for unknown values.
const unknownStr = "unknown"

func (r Resolution) String() string {
	switch r {
	case Resolution480p:
		return "480p"
	case Resolution720p:
		return "720p"
	case Resolution1080p:
		return "1080p"
	case Resolution2160p:
		return "2160p"
	default:
		return unknownStr
	}
}

// ParseResolution maps a resolution name back to its value.
func ParseResolution(s string) (Resolution, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "480p", "sd":
		return Resolution480p, true
	case "720p":
		return Resolution720p, true
	case "1080p":
		return Resolution1080p, true
	case "2160p", "4k", "uhd":
		return Resolution2160p, true
	default:
		return ResolutionUnknown, false
	}
}

// Source represents the media source type of a release.
type Source int

const (
	SourceUnknown Source = iota
	SourceBluRay
	SourceWEBDL
	SourceWEBRip
	SourceHDTV
	SourceDVD
	SourceCAM
	SourceTelesync
)

func (s Source) String() string {
	switch s {
	case SourceBluRay:
		return "bluray"
	case SourceWEBDL:
		return "webdl"
	case SourceWEBRip:
		return "webrip"
	case SourceHDTV:
		return "hdtv"
	case SourceDVD:
		return "dvd"
	case SourceCAM:
		return "cam"
	case SourceTelesync:
		return "telesync"
	default:
		return unknownStr
	}
}

// ParseSource maps a source name back to its value.
func ParseSource(s string) (Source, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bluray", "blu-ray":
		return SourceBluRay, true
	case "webdl", "web-dl":
		return SourceWEBDL, true
	case "webrip", "web-rip":
		return SourceWEBRip, true
	case "hdtv", "tv":
		return SourceHDTV, true
	case "dvd":
		return SourceDVD, true
	case "cam":
		return SourceCAM, true
	case "telesync", "ts":
		return SourceTelesync, true
	default:
		return SourceUnknown, false
	}
}

// Codec represents the video codec used in a release.
type Codec int

const (
	CodecUnknown Codec = iota
	CodecX264
	CodecX265
	CodecAV1
	CodecXviD
)

func (c Codec) String() string {
	switch c {
	case CodecX264:
		return "x264"
	case CodecX265:
		return "x265"
	case CodecAV1:
		return "av1"
	case CodecXviD:
		return "xvid"
	default:
		return unknownStr
	}
}

// ParseCodec maps a codec name back to its value.
func ParseCodec(s string) (Codec, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x264", "h264", "avc":
		return CodecX264, true
	case "x265", "h265", "hevc":
		return CodecX265, true
	case "av1":
		return CodecAV1, true
	case "xvid", "divx":
		return CodecXviD, true
	default:
		return CodecUnknown, false
	}
}

// HDRFormat represents HDR/Dolby Vision formats.
type HDRFormat int

const (
	HDRNone    HDRFormat = iota
	HDRGeneric           // "HDR" without specific version
	HDR10
	HDR10Plus
	DolbyVision
	HLG
)

func (h HDRFormat) String() string {
	switch h {
	case HDRGeneric:
		return "HDR"
	case HDR10:
		return "HDR10"
	case HDR10Plus:
		return "HDR10+"
	case DolbyVision:
		return "DV"
	case HLG:
		return "HLG"
	default:
		return ""
	}
}

// ParseHDR maps an HDR name back to its value. Accepts the spellings used in
// config files ("dolby-vision", "hdr10plus") as well as String output.
func ParseHDR(s string) (HDRFormat, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hdr":
		return HDRGeneric, true
	case "hdr10":
		return HDR10, true
	case "hdr10+", "hdr10plus":
		return HDR10Plus, true
	case "dv", "dolby-vision", "dolbyvision":
		return DolbyVision, true
	case "hlg":
		return HLG, true
	default:
		return HDRNone, false
	}
}

// AudioCodec represents the audio format of a release.
type AudioCodec int

const (
	AudioUnknown AudioCodec = iota
	AudioAAC
	AudioAC3  // Dolby Digital
	AudioEAC3 // DD+, DDP
	AudioDTS
	AudioDTSHD // DTS-HD MA
	AudioTrueHD
	AudioAtmos // TrueHD Atmos or DD+ Atmos
	AudioFLAC
)

func (a AudioCodec) String() string {
	switch a {
	case AudioAAC:
		return "AAC"
	case AudioAC3:
		return "DD"
	case AudioEAC3:
		return "DD+"
	case AudioDTS:
		return "DTS"
	case AudioDTSHD:
		return "DTS-HD MA"
	case AudioTrueHD:
		return "TrueHD"
	case AudioAtmos:
		return "Atmos"
	case AudioFLAC:
		return "FLAC"
	default:
		return ""
	}
}

// ParseAudio maps an audio name back to its value.
func ParseAudio(s string) (AudioCodec, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "aac":
		return AudioAAC, true
	case "dd", "ac3":
		return AudioAC3, true
	case "dd+", "ddp", "eac3":
		return AudioEAC3, true
	case "dts":
		return AudioDTS, true
	case "dts-hd ma", "dtshd", "dts-hd":
		return AudioDTSHD, true
	case "truehd":
		return AudioTrueHD, true
	case "atmos":
		return AudioAtmos, true
	case "flac":
		return AudioFLAC, true
	default:
		return AudioUnknown, false
	}
}

// Info contains parsed release information for a movie.
type Info struct {
	Name       string // Name the info was parsed from, extension removed
	Title      string
	Tags       string // Normalized text following the title
	Year       int
	Resolution Resolution
	Source     Source
	Codec      Codec
	Group      string
	Proper     bool
	Repack     bool

	HDR     HDRFormat
	Audio   AudioCodec
	IsRemux bool
	Edition string // "Directors Cut", "Extended", "IMAX", etc.

	// Normalized title for matching
	CleanTitle string
}
