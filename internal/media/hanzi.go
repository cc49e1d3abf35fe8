package media

import "strings"

// Hanzi bounds used for script detection. The range is the CJK Unified
// Ideographs block up to U+9FA5, the classic GB/Big5 ideograph coverage.
const (
	hanziFirst = '一'
	hanziLast  = '龥'
)

// IsHanzi reports whether r falls in the detected ideograph range.
func IsHanzi(r rune) bool {
	return r >= hanziFirst && r <= hanziLast
}

// ExtractHanzi returns every run of Hanzi in name concatenated in order of
// appearance. All other characters are dropped, so "abc中文123漢" yields
// "中文漢". Invalid UTF-8 decodes to U+FFFD and is dropped like any other
// non-matching rune.
func ExtractHanzi(name string) string {
	var b strings.Builder
	for _, r := range name {
		if IsHanzi(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// HasHanzi reports whether name contains at least one Hanzi.
func HasHanzi(name string) bool {
	return strings.IndexFunc(name, IsHanzi) >= 0
}
