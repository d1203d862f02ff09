package commitmsg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxsync/internal/domain"
)

func TestTrailerCodec_Metadata(t *testing.T) {
	codec := NewTrailerCodec()

	meta := codec.Metadata(sampleMessage)

	assert.Equal(t, "photosynthesis", meta.ContributionName)
	assert.Equal(t, "knowledge/science/biology", meta.SubDirectory)
	assert.Equal(t, "Jane Doe <jane@example.com>", meta.SignoffLine)
	require.NotNil(t, meta.Signoff)
	assert.Equal(t, domain.Identity{Name: "Jane Doe", Email: "jane@example.com"}, *meta.Signoff)
	assert.NotContains(t, meta.Summary, SignoffMarker)
	assert.False(t, meta.IsFirstSubmission())
}

func TestTrailerCodec_Metadata_FirstSubmission(t *testing.T) {
	codec := NewTrailerCodec()

	meta := codec.Metadata("Initial skill draft\n")

	assert.True(t, meta.IsFirstSubmission())
	assert.Empty(t, meta.SubDirectory)
	assert.Nil(t, meta.Signoff)
	assert.Equal(t, "Initial skill draft\n", meta.Summary)
}

func TestTrailerCodec_Identity(t *testing.T) {
	codec := NewTrailerCodec()

	id, err := codec.Identity(sampleMessage)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", id.Email)

	_, err = codec.Identity("no sign-off")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnparsableAuthorship))
}

func TestTrailerCodec_ComposeParsesBack(t *testing.T) {
	codec := NewTrailerCodec()
	signoff := domain.Identity{Name: "Jane Doe", Email: "jane@example.com"}

	message := codec.Compose(domain.CommitMetadata{
		ContributionName: "photosynthesis",
		Signoff:          &signoff,
		SubDirectory:     "knowledge/science/biology",
		Summary:          "Knowledge contribution for photosynthesis",
	})

	assert.Equal(t, sampleMessage, message)

	meta := codec.Metadata(message)
	assert.Equal(t, "photosynthesis", meta.ContributionName)
	assert.Equal(t, "knowledge/science/biology", meta.SubDirectory)
	require.NotNil(t, meta.Signoff)
	assert.Equal(t, signoff, *meta.Signoff)
}

func TestTrailerCodec_ComposeSummaryOnly(t *testing.T) {
	codec := NewTrailerCodec()

	assert.Equal(t, "summary\n", codec.Compose(domain.CommitMetadata{Summary: "summary\n\n"}))
}

func TestTrailerCodec_Republish(t *testing.T) {
	codec := NewTrailerCodec()
	id := domain.Identity{Name: "Jane Doe", Email: "jane@example.com"}

	republished := codec.Republish(sampleMessage, id)

	assert.Equal(t, sampleMessage, republished)
	assert.Equal(t, republished, codec.Republish(republished, id))
}
