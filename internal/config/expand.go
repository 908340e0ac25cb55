package config

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// ExpandTilde replaces ~ or ~/path with the user's home directory.
// Does not support ~username syntax - just ~ for the current user.
func ExpandTilde(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}

	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}

	return path
}

// Expand replaces ${NAME} references with environment values. Unset variables
// expand to the empty string. Bare $NAME is left alone since connection
// strings may legitimately contain '$'.
func Expand(s string) string {
	if !strings.Contains(s, "${") {
		return s
	}

	var b strings.Builder
	rest := s
	for {
		start := strings.Index(rest, "${")
		if start < 0 {
			b.WriteString(rest)
			break
		}
		end := strings.Index(rest[start:], "}")
		if end < 0 {
			// Unterminated reference, keep literally
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:start])
		name := rest[start+2 : start+end]
		if validEnvName(name) {
			b.WriteString(lookupVar(name))
		} else {
			b.WriteString(rest[start : start+end+1])
		}
		rest = rest[start+end+1:]
	}
	return b.String()
}

func validEnvName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// lookupVar resolves a name, with the same fallbacks the shell would use for
// HOME and USER on platforms that don't export them.
func lookupVar(name string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	switch name {
	case "HOME":
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
	case "USER":
		for _, alt := range []string{"LOGNAME", "USERNAME"} {
			if v := os.Getenv(alt); v != "" {
				return v
			}
		}
	}
	return ""
}

// RedactURI hides the password in a connection string for display.
// Strings that don't parse as URLs are returned unchanged.
func RedactURI(uri string) string {
	if uri == "" {
		return uri
	}
	u, err := url.Parse(uri)
	if err != nil || u.User == nil {
		return uri
	}
	if _, has := u.User.Password(); !has {
		return uri
	}
	return u.Redacted()
}
