package config

import (
	"errors"
	"strings"
)

// ErrMissingArgument is returned when a required option has no value.
var ErrMissingArgument = errors.New("missing required argument")

// Usage is the one-line hint printed when required options are missing.
const Usage = "Usage: whitelabel --company='[name]' --endpoint=[domain]"

// Defaults applied by Resolve.
const (
	DefaultProfile   = "templates"
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "auto"
)

// Args maps option keys to raw values.
type Args map[string]string

// ParseArgs turns "--key=value" strings into Args. Only the first "=" splits,
// a bare "--key" maps to "", and a repeated key keeps its last value.
func ParseArgs(raw []string) Args {
	args := make(Args, len(raw))
	for _, arg := range raw {
		key, value, _ := strings.Cut(strings.TrimPrefix(arg, "--"), "=")
		args[key] = value
	}
	return args
}

// Lookup returns the first non-empty value among keys.
func (a Args) Lookup(keys ...string) string {
	for _, k := range keys {
		if v := a[k]; v != "" {
			return v
		}
	}
	return ""
}

// Has reports whether any of keys was given, even with an empty value.
func (a Args) Has(keys ...string) bool {
	for _, k := range keys {
		if _, ok := a[k]; ok {
			return true
		}
	}
	return false
}

// Options is everything a whitelabel run needs.
type Options struct {
	Values     Values
	Profile    string
	Root       string
	ConfigPath string
	LogLevel   string
	LogFormat  string
	Validate   bool
}

// Resolve builds Options from parsed arguments. Company and endpoint are
// required; everything else falls back to a default.
func Resolve(args Args) (Options, error) {
	values, err := NewValues(args.Lookup("company", "c"), args.Lookup("endpoint", "e"))
	if err != nil {
		return Options{}, err
	}

	opts := Options{
		Values:     values,
		Profile:    args.Lookup("profile", "p"),
		Root:       args.Lookup("root", "r"),
		ConfigPath: args.Lookup("config"),
		LogLevel:   strings.ToLower(args.Lookup("log-level")),
		LogFormat:  strings.ToLower(args.Lookup("log-format")),
		Validate:   args.Has("validate") && args["validate"] != "false",
	}
	if opts.Profile == "" {
		opts.Profile = DefaultProfile
	}
	if opts.Root == "" {
		opts.Root = "."
	}
	if opts.LogLevel == "" {
		opts.LogLevel = DefaultLogLevel
	}
	if opts.LogFormat == "" {
		opts.LogFormat = DefaultLogFormat
	}
	return opts, nil
}
