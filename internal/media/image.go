package media

import (
	"slices"
	"strings"
)

// imageSuffixes lists the lower-cased suffixes treated as images.
var imageSuffixes = []string{"jpg", "jpeg", "png"}

// ImageSuffix returns the lower-cased text after the last '.' in name.
//
// A name without a dot, a name whose only dot is its first character (".png"
// is a hidden file, not a PNG) and a name ending in '.' all yield "".
func ImageSuffix(name string) string {
	idx := strings.LastIndexByte(name, '.')
	if idx <= 0 {
		return ""
	}
	return strings.ToLower(name[idx+1:])
}

// IsImage reports whether name carries one of the supported image suffixes.
func IsImage(name string) bool {
	suffix := ImageSuffix(name)
	return suffix != "" && slices.Contains(imageSuffixes, suffix)
}
