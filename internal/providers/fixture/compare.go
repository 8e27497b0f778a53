package fixture

import (
	"strconv"
	"strings"

	"github.com/makeadle/dle-service/internal/domain/catalog"
	"github.com/makeadle/dle-service/internal/domain/dailygame"
)

// Raw codes as the scorer emits them. Numeric codes describe the secret
// relative to the guess.
const (
	stringWrong   = 0
	stringPartial = 1
	stringExact   = 2

	numberHigher = 0
	numberEqual  = 1
	numberLower  = 2
)

// score compares guess against secret over the given category names. With no
// names, the guess's own attribute order is used. Categories the guess lacks
// are omitted; each attribute entry is scored on its own so multi-valued
// attributes produce repeated names.
func score(guess, secret catalog.Answer, names []string) []dailygame.ScoredCategory {
	if len(names) == 0 {
		names = attributeNames(guess)
	}
	secretValues := groupValues(secret)

	out := make([]dailygame.ScoredCategory, 0, len(names))
	for _, name := range names {
		guessed := valuesNamed(guess, name)
		want, ok := secretValues[name]
		for _, attr := range guessed {
			code := dailygame.CodeAbsent
			if ok {
				code = compare(attr, guessed, want)
			}
			out = append(out, dailygame.ScoredCategory{
				Name:        attr.Name,
				Type:        attr.Type,
				Correctness: code,
				Value:       attr.Value,
			})
		}
	}
	return out
}

func compare(attr catalog.AttributeValue, guessed []catalog.AttributeValue, secret []catalog.AttributeValue) int {
	if attr.Type == catalog.ValueNumber {
		return compareNumber(attr.Value, secret[0].Value)
	}
	if !containsValue(secret, attr.Value) {
		return stringWrong
	}
	if sameValues(guessed, secret) {
		return stringExact
	}
	return stringPartial
}

func compareNumber(guess, secret string) int {
	g, gErr := strconv.ParseFloat(strings.TrimSpace(guess), 64)
	s, sErr := strconv.ParseFloat(strings.TrimSpace(secret), 64)
	if gErr != nil || sErr != nil {
		return dailygame.CodeAbsent
	}
	switch {
	case s > g:
		return numberHigher
	case s < g:
		return numberLower
	default:
		return numberEqual
	}
}

func attributeNames(a catalog.Answer) []string {
	seen := map[string]bool{}
	names := make([]string, 0, len(a.Attributes))
	for _, attr := range a.Attributes {
		if seen[attr.Name] {
			continue
		}
		seen[attr.Name] = true
		names = append(names, attr.Name)
	}
	return names
}

func groupValues(a catalog.Answer) map[string][]catalog.AttributeValue {
	out := make(map[string][]catalog.AttributeValue, len(a.Attributes))
	for _, attr := range a.Attributes {
		out[attr.Name] = append(out[attr.Name], attr)
	}
	return out
}

func valuesNamed(a catalog.Answer, name string) []catalog.AttributeValue {
	var out []catalog.AttributeValue
	for _, attr := range a.Attributes {
		if attr.Name == name {
			out = append(out, attr)
		}
	}
	return out
}

func containsValue(values []catalog.AttributeValue, v string) bool {
	for _, candidate := range values {
		if strings.EqualFold(candidate.Value, v) {
			return true
		}
	}
	return false
}

func sameValues(a, b []catalog.AttributeValue) bool {
	if len(a) != len(b) {
		return false
	}
	for _, v := range a {
		if !containsValue(b, v.Value) {
			return false
		}
	}
	return true
}

func attributeValue(a catalog.Answer, name string) (string, bool) {
	for _, attr := range a.Attributes {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}
