package translate

import (
	"fmt"
	"strconv"
	"strings"
)

// requireParams enforces a command's minimum arity. Excess trailing
// parameters are never an error; each handler decides whether to consume or
// ignore them.
func requireParams(command string, params []string, min int) error {
	if len(params) < min {
		return fmt.Errorf("%s: requires at least %d parameters, got %d", command, min, len(params))
	}
	return nil
}

// number parses a coordinate, size or angle parameter with a strict decimal
// grammar. Stray parentheses around the value (generator noise) are stripped,
// but anything that is not a plain decimal number fails loudly rather than
// silently coercing to zero.
func number(command, field, raw string) (float64, error) {
	cleaned := strings.TrimSpace(strings.Trim(raw, "()"))
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %s must be numeric, got %q", command, field, raw)
	}
	return v, nil
}

// numberSafe is the variant used by the dimension translator. On failure it
// appends a remediation hint that distinguishes a quoted/symbolic value used
// in a numeric slot from a genuinely malformed number — the most common
// upstream generator mistake.
func numberSafe(command, field, raw string) (float64, error) {
	v, err := number(command, field, raw)
	if err == nil {
		return v, nil
	}
	if isQuoted(raw) {
		return 0, fmt.Errorf("%s: %s must be numeric, got quoted text %s (quote text parameters, never coordinates)", command, field, raw)
	}
	return 0, fmt.Errorf("%s: %s is not a valid number: %q (coordinates must be unquoted decimals; only text takes quotes)", command, field, raw)
}

// stringParam extracts a string parameter. The token must be delimited by a
// matching pair of double or single quotes; the delimiters are stripped.
func stringParam(command, field, raw string) (string, error) {
	if isQuoted(raw) {
		return raw[1 : len(raw)-1], nil
	}
	return "", fmt.Errorf("%s: %s must be a quoted string, got %q", command, field, raw)
}

func isQuoted(s string) bool {
	return len(s) >= 2 &&
		(s[0] == '"' || s[0] == '\'') &&
		s[len(s)-1] == s[0]
}

// coordPairs parses as many x,y pairs as the parameter list provides,
// starting at params[0]. An odd trailing coordinate without a partner is
// dropped. Each value still goes through the strict number parser.
func coordPairs(command string, params []string) ([]float64, error) {
	n := len(params) - len(params)%2
	coords := make([]float64, 0, n)
	for i := 0; i < n; i += 2 {
		x, err := number(command, fmt.Sprintf("x%d", i/2+1), params[i])
		if err != nil {
			return nil, err
		}
		y, err := number(command, fmt.Sprintf("y%d", i/2+1), params[i+1])
		if err != nil {
			return nil, err
		}
		coords = append(coords, x, y)
	}
	return coords, nil
}
