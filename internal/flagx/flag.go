// Package flagx holds command-line helpers shared by the client and server
// configuration loaders.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// ConfigFlags are the flags that name a JSON configuration file.
var ConfigFlags = []string{"-c", "-config", "--c", "--config"}

// FilterArgs keeps only the allowed flags from args, together with their
// values. Both "-f value" and "-f=value" forms are recognised; a token that
// starts with '-' is never taken as a value.
func FilterArgs(args []string, allowedFlags []string) []string {
	return walk(args, set(allowedFlags), true)
}

// ConfigPath returns the value of -c/-config in args, or "" when absent.
// The last occurrence wins. Other flags are ignored so the caller can parse
// its own flag set independently.
func ConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, ConfigFlags))

	return path
}

// WithoutConfig returns args with the -c/-config flags and their values
// removed.
func WithoutConfig(args []string) []string {
	return walk(args, set(ConfigFlags), false)
}

// walk splits args into the flags listed in names, with their values, and
// everything else. It returns the first group when listed is true.
func walk(args []string, names map[string]struct{}, listed bool) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		name, inline := splitFlag(args[i])
		_, known := names[name]

		n := 1
		if known && !inline && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			n = 2
		}
		if known == listed {
			out = append(out, args[i:i+n]...)
		}
		i += n - 1
	}
	return out
}

// splitFlag returns the flag name of arg and whether the value is inline.
func splitFlag(arg string) (string, bool) {
	if !strings.HasPrefix(arg, "-") {
		return arg, false
	}
	name, _, inline := strings.Cut(arg, "=")
	return name, inline
}

func set(items []string) map[string]struct{} {
	m := make(map[string]struct{}, len(items))
	for _, it := range items {
		m[it] = struct{}{}
	}
	return m
}
