package acctcode

import (
	"fmt"
	"strings"
)

// Unknown is the sentinel stored in every segment of an undecodable code.
const Unknown = "unknown"

// MinLength is the shortest code that carries fund, function and object segments.
const MinLength = 9

// FullLength is the length of a code with every segment present.
const FullLength = 19

// Segment boundaries within a normalized code.
const (
	fundEnd      = 3
	functionEnd  = 5
	objectEnd    = 9
	subObjectEnd = 13
	locationEnd  = 19
)

// Segments are the positional parts of a district account code.
type Segments struct {
	Fund      string
	Function  string
	Object    string
	SubObject string
	Location  string
	Valid     bool
}

// Decode splits a normalized account code into segments.
// Codes shorter than MinLength, or with a non-digit in the first MinLength
// characters, decode to all-Unknown segments with Valid false.
func Decode(code string) Segments {
	if len(code) < MinLength || !allDigits(code[:MinLength]) {
		return Segments{
			Fund:      Unknown,
			Function:  Unknown,
			Object:    Unknown,
			SubObject: Unknown,
			Location:  Unknown,
		}
	}

	padded := code
	if len(padded) < FullLength {
		padded += strings.Repeat("0", FullLength-len(padded))
	}

	return Segments{
		Fund:      padded[:fundEnd],
		Function:  padded[fundEnd:functionEnd],
		Object:    padded[functionEnd:objectEnd],
		SubObject: padded[objectEnd:subObjectEnd],
		Location:  padded[subObjectEnd:locationEnd],
		Valid:     true,
	}
}

// Format joins segments as "199-11-6119-00-001000". Invalid segments format as Unknown.
func Format(s Segments) string {
	if !s.Valid {
		return Unknown
	}
	return fmt.Sprintf("%s-%s-%s-%s-%s", s.Fund, s.Function, s.Object, s.SubObject, s.Location)
}

// Normalize strips the separators and whitespace used in exported codes.
// "199-11-6119-00-001" -> "19911611900001"
func Normalize(raw string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '.', '/', ' ', '\t', '_':
			return -1
		}
		return r
	}, strings.TrimSpace(raw))
}

// ObjectPrefix returns the first n digits of the object code, or "" when invalid.
func (s Segments) ObjectPrefix(n int) string {
	if !s.Valid || n > len(s.Object) {
		return ""
	}
	return s.Object[:n]
}

// ObjectDigit returns the leading object digit (0-9), or -1 when invalid.
func (s Segments) ObjectDigit() int {
	if !s.Valid {
		return -1
	}
	return int(s.Object[0] - '0')
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
