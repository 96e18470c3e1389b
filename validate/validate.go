// Package validate holds the input predicates applied to JetStay forms before
// anything is sent to the API.
package validate

import (
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

var (
	emailRe        = regexp.MustCompile(`^[\w\-.]+@([\w-]+\.)+[\w-]{2,4}$`)
	phoneRe        = regexp.MustCompile(`^[0-9]{10}$`)
	nameRe         = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	otpRe          = regexp.MustCompile(`^\d{6}$`)
	dateRe         = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	partnerEmailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	partnerPhoneRe = regexp.MustCompile(`^[+]?[1-9][\d\s\-()]{8,}$`)
	partnerNameRe  = regexp.MustCompile(`^[a-zA-Z\s']+$`)
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// Errors maps a form field to the first message that failed for it.
type Errors map[string]string

// OK reports whether no field failed.
func (e Errors) OK() bool { return len(e) == 0 }

func (e Errors) set(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

// MinLength counts characters, not bytes.
func MinLength(s string, n int) bool { return utf8.RuneCountInString(s) >= n }

func Email(s string) bool { return emailRe.MatchString(s) }

// Password requires at least 8 characters with a lowercase letter, an
// uppercase letter and a digit.
func Password(s string) bool {
	if !MinLength(s, 8) {
		return false
	}
	var lower, upper, digit bool
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	return lower && upper && digit
}

// Phone accepts exactly ten ASCII digits; the country prefix is added on submit.
func Phone(s string) bool { return phoneRe.MatchString(s) }

// Name accepts 3 to 20 letters or spaces.
func Name(s string) bool {
	return len(s) >= 3 && len(s) <= 20 && nameRe.MatchString(s)
}

func OTP(s string) bool { return otpRe.MatchString(s) }

// Date accepts a real calendar day in YYYY-MM-DD form.
func Date(s string) bool {
	if !dateRe.MatchString(s) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

func PartnerEmail(s string) bool { return partnerEmailRe.MatchString(s) }

// PartnerPhone accepts an international number; whitespace is ignored.
func PartnerPhone(s string) bool {
	return partnerPhoneRe.MatchString(stripSpace(s))
}

func PartnerName(s string) bool { return partnerNameRe.MatchString(s) }

// LetterDigitPassword is the looser manager password rule used for hotels.
func LetterDigitPassword(s string) bool {
	if !MinLength(s, 8) {
		return false
	}
	var letter, digit bool
	for _, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			letter = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	return letter && digit
}

var tripTypes = map[string]bool{"ECONOMY": true, "BUSINESS": true, "FIRST_CLASS": true}

func TripType(s string) bool { return tripTypes[s] }

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }
