// Package masks formats Brazilian document and phone numbers for display.
//
// Patterns use '9' for a digit slot; every other rune is a literal that is
// emitted only while input digits remain, so partial input yields a partial
// mask ("5511" -> "55+(11").
package masks

import (
	"strings"
	"unicode"
)

const (
	PhonePattern = "99+(99) 99999-9999"
	CNPJPattern  = "99.999.999/9999-99"
)

// Unmask keeps only the decimal digits of s.
func Unmask(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Apply formats the digits found in value according to pattern. Input runes
// that are not digits are ignored; digits beyond the pattern are dropped.
func Apply(value, pattern string) string {
	digits := []rune(Unmask(value))
	if len(digits) == 0 {
		return ""
	}

	var b strings.Builder
	next := 0
	for _, p := range pattern {
		if next >= len(digits) {
			break
		}
		if p == '9' {
			b.WriteRune(digits[next])
			next++
			continue
		}
		b.WriteRune(p)
	}
	return b.String()
}

// Phone masks a full international mobile number, e.g. 5511987654321 as
// "55+(11) 98765-4321". Empty input gives an empty string.
func Phone(s string) string {
	if strings.TrimFunc(s, unicode.IsSpace) == "" {
		return ""
	}
	return Apply(s, PhonePattern)
}

// CNPJ masks a company registration number. Empty input gives an empty string.
func CNPJ(s string) string {
	if s == "" {
		return ""
	}
	return Apply(s, CNPJPattern)
}
