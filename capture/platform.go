package capture

import (
	"path/filepath"
	"strings"
)

// Platform identifies which console produced a capture.
type Platform int

// The zero value is Unknown and is always rejected.
const (
	Unknown Platform = iota
	GameCubeEp12
	GameCubeEp3
	Dreamcast
)

var tokens = map[Platform]string{
	GameCubeEp12: "PSO_SCREEN",
	GameCubeEp3:  "PSO3_SCREEN",
	Dreamcast:    "PSO_DC_SCREEN",
}

// Token returns the filename token used for the platform, or the empty
// string for Unknown.
func (p Platform) Token() string {
	return tokens[p]
}

func (p Platform) String() string {
	switch p {
	case GameCubeEp12:
		return "GameCube (Episode I & II)"
	case GameCubeEp3:
		return "GameCube (Episode III)"
	case Dreamcast:
		return "Dreamcast"
	default:
		return "Unknown"
	}
}

// GameCube reports whether captures for the platform use the GameCube
// encoding.
func (p Platform) GameCube() bool {
	return p == GameCubeEp12 || p == GameCubeEp3
}

// ParsePlatform maps a filename token to a Platform.
func ParsePlatform(token string) (Platform, error) {
	for p, t := range tokens {
		if t == token {
			return p, nil
		}
	}
	return Unknown, &UnknownPlatformError{Token: token}
}

// PlatformFromFilename works out the platform from a filename such as
// "PSO_SCREEN_1712345678.dat". The token must either be the whole name,
// minus any extension, or be followed by an underscore.
func PlatformFromFilename(file string) (Platform, error) {
	base := filepath.Base(file)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	// Try the longest token first so "PSO_SCREEN" can't shadow anything
	best, bestLen := Unknown, 0
	for p, t := range tokens {
		if name == t || strings.HasPrefix(name, t+"_") {
			if len(t) > bestLen {
				best, bestLen = p, len(t)
			}
		}
	}
	if best == Unknown {
		return Unknown, &UnknownPlatformError{Token: name}
	}
	return best, nil
}
