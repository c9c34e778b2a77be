// Package ticker finds $SYMBOL mentions in free-form text.
package ticker

import (
	"regexp"
	"strings"
)

// symbolPattern matches $AAPL, $brk.b and $0700.HK style mentions. A numeric
// symbol needs an exchange suffix so dollar amounts like $100 never match.
var symbolPattern = regexp.MustCompile(`\$([A-Za-z][A-Za-z0-9]{0,9}(?:\.[A-Za-z]{1,4})?|[0-9]{1,6}\.[A-Za-z]{1,4})\b`)

// Extract returns the first ticker mentioned in text, upper-cased.
func Extract(text string) (string, bool) {
	m := symbolPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.ToUpper(m[1]), true
}
