package util

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// FoldString returns the NFC-normalized, case-folded form of s, suitable for
// case-insensitive comparisons.
func FoldString(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}
