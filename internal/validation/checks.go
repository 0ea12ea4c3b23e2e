package validation

import (
	"regexp"
	"strings"
)

// DialingCodeZA is the domestic dialing code with its own digit rule.
const DialingCodeZA = "+27"

// CountryZA is the domestic country code with its own postal-code rule.
const CountryZA = "ZA"

var (
	emailPattern  = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s.]+$`)
	digitsPattern = regexp.MustCompile(`^[0-9]+$`)
)

// validEmail checks local-part @ domain with at least one dot in the domain.
func validEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// validSAIDNumber checks the 13-digit length and the weighted-digit checksum.
// Callers emit a single coarse message for either failure.
func validSAIDNumber(s string) bool {
	if len(s) != 13 || !digitsPattern.MatchString(s) {
		return false
	}
	return luhnChecksum(s)
}

// luhnChecksum runs the Luhn pass over a digit string: doubling every second
// digit from the right, summing the digit values, valid when the sum is a
// multiple of ten.
func luhnChecksum(digits string) bool {
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// phoneProblem validates a phone number against the dialing code and returns
// a message fragment, or "" when valid. The domestic code requires exactly
// nine digits with no leading zero; every other code accepts 6 to 15 digits.
func phoneProblem(dialingCode, number string) string {
	number = strings.TrimSpace(number)
	if !digitsPattern.MatchString(number) {
		return "must contain only digits"
	}
	if dialingCode == DialingCodeZA {
		if len(number) != 9 || number[0] == '0' {
			return "must be 9 digits with no leading 0"
		}
		return ""
	}
	if len(number) < 6 || len(number) > 15 {
		return "must be between 6 and 15 digits"
	}
	return ""
}

// postalCodeProblem validates a postal code against the country and returns a
// message fragment, or "" when valid. South Africa requires exactly four
// digits; every other country accepts free-form text up to ten characters.
func postalCodeProblem(country, code string) string {
	code = strings.TrimSpace(code)
	if country == CountryZA {
		if len(code) != 4 || !digitsPattern.MatchString(code) {
			return "must be 4 digits"
		}
		return ""
	}
	if len(code) > 10 {
		return "must be at most 10 characters"
	}
	return ""
}
