// Package quality defines quality levels and the profiles that rank them.
package quality

import "github.com/vmunix/arrgate/pkg/release"

// Well-known quality level names, lowest to highest by conventional weight.
// Profiles are free to order them differently or use other names.
const (
	SDTV        = "SDTV"
	DVD         = "DVD"
	WEBRip480p  = "WEBRip-480p"
	HDTV720p    = "HDTV-720p"
	WEBRip720p  = "WEBRip-720p"
	WEBDL720p   = "WEBDL-720p"
	Bluray720p  = "Bluray-720p"
	HDTV1080p   = "HDTV-1080p"
	WEBRip1080p = "WEBRip-1080p"
	WEBDL1080p  = "WEBDL-1080p"
	Bluray1080p = "Bluray-1080p"
	Remux1080p  = "Remux-1080p"
	HDTV2160p   = "HDTV-2160p"
	WEBRip2160p = "WEBRip-2160p"
	WEBDL2160p  = "WEBDL-2160p"
	Bluray2160p = "Bluray-2160p"
	Remux2160p  = "Remux-2160p"
	Unknown     = ""
)

// Known lists the well-known levels, lowest first.
var Known = []string{
	SDTV, DVD, WEBRip480p,
	HDTV720p, WEBRip720p, WEBDL720p, Bluray720p,
	HDTV1080p, WEBRip1080p, WEBDL1080p, Bluray1080p, Remux1080p,
	HDTV2160p, WEBRip2160p, WEBDL2160p, Bluray2160p, Remux2160p,
}

// IsKnown reports whether name is one of the well-known levels.
func IsKnown(name string) bool {
	for _, k := range Known {
		if k == name {
			return true
		}
	}
	return false
}

// FromRelease derives the quality level name of parsed release metadata.
// Returns Unknown when the resolution or source cannot be placed.
func FromRelease(info release.Info) string {
	switch info.Resolution {
	case release.Resolution2160p:
		return bySource(info, HDTV2160p, WEBRip2160p, WEBDL2160p, Bluray2160p, Remux2160p)
	case release.Resolution1080p:
		return bySource(info, HDTV1080p, WEBRip1080p, WEBDL1080p, Bluray1080p, Remux1080p)
	case release.Resolution720p:
		return bySource(info, HDTV720p, WEBRip720p, WEBDL720p, Bluray720p, Bluray720p)
	case release.Resolution480p:
		switch info.Source {
		case release.SourceWEBRip, release.SourceWEBDL:
			return WEBRip480p
		case release.SourceDVD, release.SourceBluRay:
			return DVD
		case release.SourceHDTV:
			return SDTV
		}
	}

	// Without a resolution only the SD sources are unambiguous.
	switch info.Source {
	case release.SourceDVD:
		return DVD
	case release.SourceHDTV:
		if info.Resolution == release.ResolutionUnknown {
			return SDTV
		}
	}
	return Unknown
}

func bySource(info release.Info, hdtv, webrip, webdl, bluray, remux string) string {
	if info.IsRemux {
		return remux
	}
	switch info.Source {
	case release.SourceHDTV:
		return hdtv
	case release.SourceWEBRip:
		return webrip
	case release.SourceWEBDL:
		return webdl
	case release.SourceBluRay:
		return bluray
	default:
		return Unknown
	}
}
