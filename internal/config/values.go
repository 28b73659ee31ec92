// Package config resolves whitelabel options from command arguments and
// describes the profiles the renderer runs.
package config

import (
	"fmt"
	"strings"
)

// Token is the name of a placeholder embedded in template text as {{NAME}}.
type Token string

// Known tokens.
const (
	TokenCompanyName Token = "COMPANY_NAME"
	TokenAPIEndpoint Token = "API_ENDPOINT"
	TokenCompanySlug Token = "COMPANY_SLUG"
)

// AllTokens lists every token the renderer understands.
var AllTokens = []Token{TokenCompanyName, TokenAPIEndpoint, TokenCompanySlug}

// Placeholder returns the literal marker for the token, e.g. "{{COMPANY_NAME}}".
func (t Token) Placeholder() string {
	return "{{" + string(t) + "}}"
}

// Valid reports whether t is one of AllTokens.
func (t Token) Valid() bool {
	for _, known := range AllTokens {
		if t == known {
			return true
		}
	}
	return false
}

// Values is the substitution bundle for one run. It is built once and passed
// by value, so render calls cannot alter it.
type Values struct {
	CompanyName string
	APIEndpoint string
	CompanySlug string
}

// NewValues validates the required fields and derives the company slug.
func NewValues(companyName, apiEndpoint string) (Values, error) {
	var missing []string
	if companyName == "" {
		missing = append(missing, "company")
	}
	if apiEndpoint == "" {
		missing = append(missing, "endpoint")
	}
	if len(missing) > 0 {
		return Values{}, fmt.Errorf("%w: %s", ErrMissingArgument, strings.Join(missing, ", "))
	}

	return Values{
		CompanyName: companyName,
		APIEndpoint: apiEndpoint,
		CompanySlug: Slug(companyName),
	}, nil
}

// Lookup returns the substitution for a token.
func (v Values) Lookup(t Token) (string, bool) {
	switch t {
	case TokenCompanyName:
		return v.CompanyName, true
	case TokenAPIEndpoint:
		return v.APIEndpoint, true
	case TokenCompanySlug:
		return v.CompanySlug, true
	}
	return "", false
}

// Replacer builds a strings.Replacer for the given token set. Replacement is
// a single left-to-right pass, so substituted values are never rescanned.
func (v Values) Replacer(tokens []Token) *strings.Replacer {
	pairs := make([]string, 0, len(tokens)*2)
	for _, t := range tokens {
		value, ok := v.Lookup(t)
		if !ok {
			continue
		}
		pairs = append(pairs, t.Placeholder(), value)
	}
	return strings.NewReplacer(pairs...)
}

// Slug uppercases name and replaces each space with an underscore.
func Slug(name string) string {
	return strings.ReplaceAll(strings.ToUpper(name), " ", "_")
}
