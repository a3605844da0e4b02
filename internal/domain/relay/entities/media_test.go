package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMediaRef(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want MediaRef
	}{
		{"song", "https://play.radiojavan.com/song/abc123", MediaRef{Kind: MediaKindSong, ID: "abc123"}},
		{"video with query", "https://play.radiojavan.com/video/abc123?start=1", MediaRef{Kind: MediaKindVideo, ID: "abc123"}},
		{"extra segments", "https://play.radiojavan.com/podcast/show-1/extra", MediaRef{Kind: MediaKindPodcast, ID: "show-1"}},
		{"escaped id kept verbatim", "https://play.radiojavan.com/song/a%20b", MediaRef{Kind: MediaKindSong, ID: "a%20b"}},
		{"kind only", "https://play.radiojavan.com/song", MediaRef{Kind: MediaKindSong}},
		{"root", "https://play.radiojavan.com/", MediaRef{}},
		{"no path", "https://play.radiojavan.com", MediaRef{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMediaRef(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMediaRef_Invalid(t *testing.T) {
	_, err := ParseMediaRef("http://[::1")
	require.Error(t, err)
}

func TestMediaKind_DeliveryAndFilename(t *testing.T) {
	assert.Equal(t, DeliveryModeAudio, MediaKindSong.DeliveryMode())
	assert.Equal(t, DeliveryModeAudio, MediaKindPodcast.DeliveryMode())
	assert.Equal(t, DeliveryModeAudio, MediaKindVideo.DeliveryMode())
	assert.Equal(t, DeliveryModeDocument, MediaKind("album").DeliveryMode())

	assert.Equal(t, "abc123.mp3", MediaKindSong.Filename("abc123"))
	assert.Equal(t, "abc123.mp3", MediaKindPodcast.Filename("abc123"))
	assert.Equal(t, "abc123.mp4", MediaKindVideo.Filename("abc123"))
}

func TestCandidateURLSet_First(t *testing.T) {
	assert.Equal(t, "", CandidateURLSet(nil).First())
	assert.Equal(t, "b", CandidateURLSet{"", "b"}.First())
	assert.Equal(t, "a", CandidateURLSet{"a", "b"}.First())
}
