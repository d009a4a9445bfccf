// Package password holds the account password policy.
package password

import "strings"

// specialChars is the set of characters at least one of which must appear
// in a valid password.
const specialChars = `!@#$%^&*(),.?":{}|<>`

// Valid reports whether candidate satisfies the policy: at least 6
// characters long and containing at least one special character.
func Valid(candidate string) bool {
	if len(candidate) < 6 {
		return false
	}
	return strings.ContainsAny(candidate, specialChars)
}
