package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// TimestampLayout is the stored form of a registration timestamp.
const TimestampLayout = "2006-01-02 15:04:05"

const dateOfBirthLayout = "2006-01-02"

var (
	emailRegex = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@" +
		`[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?` +
		`(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

	// Visa, Mastercard, Discover, Amex, Diners Club and JCB.
	cardNumberRegex = regexp.MustCompile(`^(?:4[0-9]{12}(?:[0-9]{3})?` +
		`|5[1-5][0-9]{14}` +
		`|6(?:011|5[0-9]{2})[0-9]{12}` +
		`|3[47][0-9]{13}` +
		`|3(?:0[0-5]|[68][0-9])[0-9]{11}` +
		`|(?:2131|1800|35\d{3})\d{11})$`)

	cardSeparators = regexp.MustCompile(`[\s-]`)

	dateRegex   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	expiryRegex = regexp.MustCompile(`^(0[1-9]|1[0-2])/(\d{2})$`)
	cvvRegex    = regexp.MustCompile(`^\d{3,4}$`)
	phoneRegex  = regexp.MustCompile(`^\+?\d{1,4}?[-.\s]?\(?\d{1,3}?\)?[-.\s]?\d{1,4}[-.\s]?\d{1,4}[-.\s]?\d{1,9}$`)
)

// IsValidEmail reports whether email has a local-part@domain shape.
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// NormalizeCardNumber strips whitespace and hyphens from a card number.
func NormalizeCardNumber(number string) string {
	return cardSeparators.ReplaceAllString(number, "")
}

// IsValidCardNumber reports whether an already normalized card number
// matches one of the major issuer numbering schemes.
func IsValidCardNumber(number string) bool {
	return cardNumberRegex.MatchString(number)
}

// HasDateShape reports whether s looks like YYYY-MM-DD. It does not check
// that the date exists.
func HasDateShape(s string) bool {
	return dateRegex.MatchString(s)
}

// ParseDateOfBirth parses a YYYY-MM-DD date, rejecting dates that do not
// exist such as 2023-02-30.
func ParseDateOfBirth(s string) (time.Time, error) {
	return time.Parse(dateOfBirthLayout, s)
}

// AgeOn returns the age in whole years of someone born on dob, as of now.
func AgeOn(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}

// AgeMatches reports whether a submitted age is within one year of the
// age computed from the date of birth.
func AgeMatches(computed, submitted int) bool {
	diff := computed - submitted
	if diff < 0 {
		diff = -diff
	}
	return diff <= 1
}

// ParseAge parses a submitted age.
func ParseAge(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

// IsPositiveAge reports whether s is a whole number greater than zero.
func IsPositiveAge(s string) bool {
	age, err := ParseAge(s)
	return err == nil && age > 0
}

// ParseExpiry splits an MM/YY expiry date into its month and four-digit
// year. ok is false when s is not MM/YY with a month between 01 and 12.
func ParseExpiry(s string) (month time.Month, year int, ok bool) {
	m := expiryRegex.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, false
	}
	mm, _ := strconv.Atoi(m[1])
	yy, _ := strconv.Atoi(m[2])
	return time.Month(mm), 2000 + yy, true
}

// ExpiryPassed reports whether the first day of the expiry month lies
// before now.
func ExpiryPassed(month time.Month, year int, now time.Time) bool {
	expiry := time.Date(year, month, 1, 0, 0, 0, 0, now.Location())
	return expiry.Before(now)
}

// IsValidCVV reports whether cvv is three or four digits.
func IsValidCVV(cvv string) bool {
	return cvvRegex.MatchString(cvv)
}

// IsValidPhone reports whether phone looks like a domestic or
// international phone number.
func IsValidPhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}

// NormalizeTimestamp converts a client supplied timestamp to
// TimestampLayout in UTC. An empty timestamp means now.
func NormalizeTimestamp(ts string, now time.Time) (string, error) {
	if ts == "" {
		return now.UTC().Format(TimestampLayout), nil
	}
	parsed, err := dateparse.ParseIn(ts, time.UTC)
	if err != nil {
		return "", err
	}
	return parsed.UTC().Format(TimestampLayout), nil
}
