package mediaurl

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conte777/mediarelay/config"
	"github.com/Conte777/mediarelay/internal/domain/relay/entities"
)

func defaultDeriver() *Deriver {
	return NewDeriver(&config.MediaConfig{
		MirrorHosts: []string{"https://host2.rj-mw1.com", "https://host1.rj-mw1.com"},
	})
}

func TestDeriver_SupportedKinds(t *testing.T) {
	tests := []struct {
		kind entities.MediaKind
		want entities.CandidateURLSet
	}{
		{entities.MediaKindSong, entities.CandidateURLSet{
			"https://host2.rj-mw1.com/media/mp3/mp3-320/abc123.mp3",
			"https://host1.rj-mw1.com/media/mp3/mp3-320/abc123.mp3",
		}},
		{entities.MediaKindPodcast, entities.CandidateURLSet{
			"https://host2.rj-mw1.com/media/podcast/mp3-320/abc123.mp3",
			"https://host1.rj-mw1.com/media/podcast/mp3-320/abc123.mp3",
		}},
		{entities.MediaKindVideo, entities.CandidateURLSet{
			"https://host2.rj-mw1.com/media/music_video/hd/abc123.mp4",
			"https://host1.rj-mw1.com/media/music_video/hd/abc123.mp4",
		}},
	}

	d := defaultDeriver()
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, d.Derive(tt.kind, "abc123"))
		})
	}
}

func TestDeriver_AnyIdentifier(t *testing.T) {
	d := defaultDeriver()
	ids := []string{"", "x", "Artist-Name-Song-Title", "a%20b", "ünïcode"}

	for _, kind := range []entities.MediaKind{entities.MediaKindSong, entities.MediaKindPodcast, entities.MediaKindVideo} {
		for _, id := range ids {
			got := d.Derive(kind, id)
			require.Len(t, got, 2)
			assert.True(t, strings.HasPrefix(got[0], "https://host2."), got[0])
			assert.True(t, strings.HasPrefix(got[1], "https://host1."), got[1])
			for _, u := range got {
				assert.True(t, strings.HasSuffix(u, id+kind.Extension()), u)
				assert.Contains(t, u, pathTemplates[kind])
				_, err := url.Parse(u)
				assert.NoError(t, err)
			}
		}
	}
}

func TestDeriver_UnsupportedKind(t *testing.T) {
	d := defaultDeriver()

	for _, kind := range []entities.MediaKind{"", "album", "playlist", "SONG"} {
		assert.Empty(t, d.Derive(kind, "abc123"), string(kind))
		assert.False(t, Supported(kind))
	}
}

func TestNewDeriver_CopiesHosts(t *testing.T) {
	cfg := &config.MediaConfig{MirrorHosts: []string{"https://a", "https://b"}}
	d := NewDeriver(cfg)
	cfg.MirrorHosts[0] = "https://changed"

	assert.Equal(t, "https://a/media/mp3/mp3-320/x.mp3", d.Derive(entities.MediaKindSong, "x")[0])
}
