// Package entities contains domain entities
package entities

import (
	"fmt"
	"net/url"
	"strings"
)

// MediaKind is the first path segment of a canonical media page URL
type MediaKind string

const (
	MediaKindSong    MediaKind = "song"
	MediaKindPodcast MediaKind = "podcast"
	MediaKindVideo   MediaKind = "video"
)

// DeliveryMode selects the Bot API method used to deliver a result
type DeliveryMode string

const (
	DeliveryModeMessage  DeliveryMode = "message"
	DeliveryModeAudio    DeliveryMode = "audio"
	DeliveryModeDocument DeliveryMode = "document"
)

// DeliveryMode returns how media of this kind reaches the user
func (k MediaKind) DeliveryMode() DeliveryMode {
	switch k {
	case MediaKindSong, MediaKindPodcast, MediaKindVideo:
		return DeliveryModeAudio
	default:
		return DeliveryModeDocument
	}
}

// Extension returns the file extension served by the mirrors for this kind
func (k MediaKind) Extension() string {
	if k == MediaKindVideo {
		return ".mp4"
	}
	return ".mp3"
}

// Filename returns the attachment name for a media id
func (k MediaKind) Filename(mediaID string) string {
	return mediaID + k.Extension()
}

// MediaRef identifies media on the provider by kind and id
type MediaRef struct {
	Kind MediaKind
	ID   string
}

// ParseMediaRef extracts kind (segment 1) and id (segment 2) from a canonical URL path.
// Missing segments are left empty.
func ParseMediaRef(rawURL string) (MediaRef, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return MediaRef{}, fmt.Errorf("parse media url: %w", err)
	}

	segments := strings.Split(u.EscapedPath(), "/")

	var ref MediaRef
	if len(segments) > 1 {
		ref.Kind = MediaKind(segments[1])
	}
	if len(segments) > 2 {
		ref.ID = segments[2]
	}
	return ref, nil
}

// CandidateURLSet is an ordered list of direct download URLs, most preferred first
type CandidateURLSet []string

// First returns the first non-empty candidate, used for fallback links
func (c CandidateURLSet) First() string {
	for _, u := range c {
		if u != "" {
			return u
		}
	}
	return ""
}

// FetchedPayload is a downloaded media body
type FetchedPayload struct {
	Data        []byte
	SourceURL   string
	ContentType string
}

// Size returns the payload size in bytes
func (p *FetchedPayload) Size() int {
	return len(p.Data)
}
