package document

import (
	"regexp"
	"strings"
)

// Type identifies the kind of identity document being validated
type Type string

const (
	TypeDNI Type = "DNI"
	TypeCIF Type = "CIF"
	TypeSSN Type = "social security number"
	TypeCCC Type = "contribution account code"
)

var (
	dniPattern       = regexp.MustCompile(`^[0-9]{7,8}[A-Z]$`)
	cifPattern       = regexp.MustCompile(`^[A-Z][0-9]{7,8}$`)
	ssnEdgePattern   = regexp.MustCompile(`^[0-9]{2}$`)
	ssnMiddlePattern = regexp.MustCompile(`^[0-9]{7,8}$`)
)

// IsValidDNI reports whether doc is 7 or 8 digits followed by one letter.
// The letter is matched case-insensitively.
func IsValidDNI(doc string) bool {
	return dniPattern.MatchString(strings.ToUpper(doc))
}

// IsValidCIF reports whether doc is one letter followed by 7 or 8 digits
func IsValidCIF(doc string) bool {
	return cifPattern.MatchString(strings.ToUpper(doc))
}

// IsValidSSN reports whether parts is a 3-part social security or
// contribution account number: 2 digits, 7-8 digits, 2 digits
func IsValidSSN(parts []string) bool {
	if len(parts) != 3 {
		return false
	}

	return ssnEdgePattern.MatchString(parts[0]) &&
		ssnMiddlePattern.MatchString(parts[1]) &&
		ssnEdgePattern.MatchString(parts[2])
}
