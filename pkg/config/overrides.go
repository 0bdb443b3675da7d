package config

import (
	"fmt"
	"os"
	"strings"
)

// ParamEnvPrefix prefixes per-parameter environment overrides, e.g.
// VEGCA_PARAM_N_SHORT=100.
const ParamEnvPrefix = EnvPrefix + "_PARAM_"

// EnvOverrides collects per-parameter overrides from environ (os.Environ when nil).
// Variable suffixes match parameter names case-insensitively. A suffix that matches
// no name, or more than one, is an error.
func EnvOverrides(environ []string, names []string) (map[string]string, error) {
	if environ == nil {
		environ = os.Environ()
	}

	byUpper := make(map[string][]string, len(names))
	for _, name := range names {
		key := strings.ToUpper(name)
		byUpper[key] = append(byUpper[key], name)
	}

	overrides := make(map[string]string)
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, ParamEnvPrefix) {
			continue
		}

		suffix := strings.ToUpper(strings.TrimPrefix(key, ParamEnvPrefix))
		matches := byUpper[suffix]
		switch len(matches) {
		case 0:
			return nil, fmt.Errorf("%s does not match any parameter", key)
		case 1:
			overrides[matches[0]] = value
		default:
			return nil, fmt.Errorf("%s is ambiguous: matches %s", key, strings.Join(matches, ", "))
		}
	}

	return overrides, nil
}

// ParseSetFlags turns name=value pairs from --set flags into overrides.
func ParseSetFlags(pairs []string) (map[string]string, error) {
	overrides := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --set %q: expected name=value", pair)
		}
		overrides[name] = value
	}
	return overrides, nil
}

// MergeOverrides layers CLI overrides on top of environment overrides.
func MergeOverrides(env, cli map[string]string) map[string]string {
	merged := make(map[string]string, len(env)+len(cli))
	for k, v := range env {
		merged[k] = v
	}
	for k, v := range cli {
		merged[k] = v
	}
	return merged
}
