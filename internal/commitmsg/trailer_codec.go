package commitmsg

import (
	"strings"

	"taxsync/internal/domain"
	"taxsync/internal/ports"
)

// TrailerCodec implements ports.CommitMessageCodec with the plain-text
// field and sign-off trailer convention
type TrailerCodec struct{}

// Verify interface compliance at compile time
var _ ports.CommitMessageCodec = (*TrailerCodec)(nil)

// NewTrailerCodec creates a new TrailerCodec
func NewTrailerCodec() *TrailerCodec {
	return &TrailerCodec{}
}

// Metadata implements CommitMessageCodec.Metadata
func (c *TrailerCodec) Metadata(message string) domain.CommitMetadata {
	meta := domain.CommitMetadata{
		ContributionName: ExtractField(message, FieldContributionName),
		SignoffLine:      SignoffLine(message),
		SubDirectory:     ExtractField(message, FieldSubDirectory),
		Summary:          StripSignoff(message),
	}
	if id, err := ParseSignoffIdentity(meta.SignoffLine); err == nil {
		meta.Signoff = &id
	}
	return meta
}

// Identity implements CommitMessageCodec.Identity
func (c *TrailerCodec) Identity(message string) (domain.Identity, error) {
	return ParseSignoffIdentity(SignoffLine(message))
}

// Compose implements CommitMessageCodec.Compose
func (c *TrailerCodec) Compose(meta domain.CommitMetadata) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(meta.Summary, " \t\r\n"))

	var fields []string
	if meta.ContributionName != "" {
		fields = append(fields, FormatField(FieldContributionName, meta.ContributionName))
	}
	if meta.SubDirectory != "" {
		fields = append(fields, FormatField(FieldSubDirectory, meta.SubDirectory))
	}
	if len(fields) > 0 {
		b.WriteString("\n\n")
		b.WriteString(strings.Join(fields, "\n"))
	}

	if meta.Signoff != nil {
		b.WriteString("\n\n")
		b.WriteString(FormatSignoff(*meta.Signoff))
	}
	b.WriteString("\n")
	return b.String()
}

// Republish implements CommitMessageCodec.Republish.
// The summary keeps its metadata fields; the trailer is re-derived from id.
func (c *TrailerCodec) Republish(message string, id domain.Identity) string {
	return StripSignoff(message) + "\n\n" + FormatSignoff(id) + "\n"
}
