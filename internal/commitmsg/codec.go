// Package commitmsg reads and writes the metadata convention embedded in
// contribution commit messages.
//
// A message carries one "<Field>:<value>" line per metadata field and ends with
// a sign-off trailer:
//
//	Knowledge contribution for photosynthesis
//
//	Contribution-Name:photosynthesis
//	Sub-Directory:knowledge/science/biology
//
//	Signed-off-by: Jane Doe <jane@example.com>
//
// Messages already committed by other producers use this exact format, so the
// marker strings must not change.
package commitmsg

import (
	"fmt"
	"regexp"
	"strings"

	"taxsync/internal/domain"
)

const (
	FieldContributionName = "Contribution-Name"
	FieldSubDirectory     = "Sub-Directory"
	SignoffMarker         = "Signed-off-by"
)

var identityPattern = regexp.MustCompile(`^(.*\S)\s*<([^<>\s]+@[^<>\s]+)>$`)

// ExtractField returns the trimmed value of the first line starting with
// "<marker>:", or "" when no such line exists.
func ExtractField(message, marker string) string {
	prefix := marker + ":"
	for _, line := range strings.Split(message, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(line[len(prefix):])
		}
	}
	return ""
}

// FormatField serializes one metadata line
func FormatField(marker, value string) string {
	return marker + ":" + value
}

// StripSignoff keeps only the text before the first sign-off marker, without
// trailing blank lines. Messages without the marker are returned unchanged.
func StripSignoff(message string) string {
	idx := strings.Index(message, SignoffMarker)
	if idx < 0 {
		return message
	}
	return strings.TrimRight(message[:idx], " \t\r\n")
}

// SignoffLine returns the "Name <email>" text of the sign-off trailer, or ""
func SignoffLine(message string) string {
	idx := strings.Index(message, SignoffMarker)
	if idx < 0 {
		return ""
	}
	rest := message[idx+len(SignoffMarker):]
	if end := strings.IndexByte(rest, '\n'); end >= 0 {
		rest = rest[:end]
	}
	rest = strings.TrimSpace(rest)
	rest = strings.TrimPrefix(rest, ":")
	return strings.TrimSpace(rest)
}

// ParseSignoffIdentity parses "Name <email>". Publishing cannot proceed without
// attributable authorship, so anything else is an error.
func ParseSignoffIdentity(line string) (domain.Identity, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return domain.Identity{}, domain.NewError(domain.KindUnparsableAuthorship, "parse sign-off",
			fmt.Errorf("missing %s line", SignoffMarker))
	}
	m := identityPattern.FindStringSubmatch(line)
	if m == nil {
		return domain.Identity{}, domain.NewError(domain.KindUnparsableAuthorship, "parse sign-off",
			fmt.Errorf("%q does not match \"Name <email>\"", line))
	}
	return domain.Identity{Name: strings.TrimSpace(m[1]), Email: m[2]}, nil
}

// FormatSignoff renders the sign-off trailer for an identity
func FormatSignoff(id domain.Identity) string {
	return SignoffMarker + ": " + id.String()
}
