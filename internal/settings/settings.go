package settings

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/jmecosta/sonar-visual-studio/internal/filesystem"
)

// Settings is a read-only key→string lookup of analysis properties.
// Components receive it explicitly; there is no ambient store.
type Settings struct {
	values map[string]string
}

// New creates a Settings from a key→value map.
func New(values map[string]string) *Settings {
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &Settings{values: copied}
}

// LoadValues reads a properties file (key=value lines) into a map.
func LoadValues(fs filesystem.FileSystem, path string) (map[string]string, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}

	values, err := godotenv.Unmarshal(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}

	return values, nil
}

// Get returns the value for key, or "" when unset.
func (s *Settings) Get(key string) string {
	return s.values[key]
}

// Has reports whether key is set, even to an empty value.
func (s *Settings) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// GetBool returns the value for key parsed as a boolean; unset or
// unparsable values are false.
func (s *Settings) GetBool(key string) bool {
	value, err := strconv.ParseBool(s.values[key])
	if err != nil {
		return false
	}
	return value
}

// WithPrefix returns all entries whose key starts with prefix, with the
// prefix stripped. Used to forward per-module properties.
func (s *Settings) WithPrefix(prefix string) map[string]string {
	matched := make(map[string]string)
	for k, v := range s.values {
		if strings.HasPrefix(k, prefix) {
			matched[strings.TrimPrefix(k, prefix)] = v
		}
	}
	return matched
}

// ParsePairs parses repeated "key=value" arguments (e.g. from --set flags).
func ParsePairs(pairs []string) (map[string]string, error) {
	values := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid property %q, expected key=value", pair)
		}
		values[key] = value
	}
	return values, nil
}
