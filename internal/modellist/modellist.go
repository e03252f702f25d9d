package modellist

import "strings"

const separator = ","

// Parse splits raw on commas, trims every segment and drops the ones that are
// empty after trimming. Order and duplicates are preserved. An empty input
// yields an empty, non-nil slice.
func Parse(raw string) []string {
	if raw == "" {
		return []string{}
	}

	parts := strings.Split(raw, separator)
	models := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		models = append(models, part)
	}
	return models
}

// ParseOptional is Parse for values that may be absent, e.g. the result of
// os.LookupEnv.
func ParseOptional(raw string, ok bool) []string {
	if !ok {
		return []string{}
	}
	return Parse(raw)
}

// Join renders models back into the comma-separated form accepted by Parse.
func Join(models []string) string {
	return strings.Join(models, separator)
}
