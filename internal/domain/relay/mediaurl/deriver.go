// Package mediaurl derives direct mirror download URLs from media references
package mediaurl

import (
	"github.com/Conte777/mediarelay/config"
	"github.com/Conte777/mediarelay/internal/domain/relay/entities"
)

// pathTemplates maps media kinds to mirror path prefixes
var pathTemplates = map[entities.MediaKind]string{
	entities.MediaKindSong:    "/media/mp3/mp3-320/",
	entities.MediaKindPodcast: "/media/podcast/mp3-320/",
	entities.MediaKindVideo:   "/media/music_video/hd/",
}

// Deriver builds candidate URLs for every configured mirror host
type Deriver struct {
	hosts []string
}

// NewDeriver creates a Deriver over the configured mirror hosts, in preference order
func NewDeriver(cfg *config.MediaConfig) *Deriver {
	hosts := make([]string, len(cfg.MirrorHosts))
	copy(hosts, cfg.MirrorHosts)
	return &Deriver{hosts: hosts}
}

// Derive returns one URL per mirror host, or an empty set for unsupported kinds.
// An empty mediaID still yields syntactically valid URLs.
func (d *Deriver) Derive(kind entities.MediaKind, mediaID string) entities.CandidateURLSet {
	prefix, ok := pathTemplates[kind]
	if !ok {
		return entities.CandidateURLSet{}
	}

	file := kind.Filename(mediaID)
	candidates := make(entities.CandidateURLSet, 0, len(d.hosts))
	for _, host := range d.hosts {
		candidates = append(candidates, host+prefix+file)
	}
	return candidates
}

// Supported reports whether kind has mirror templates
func Supported(kind entities.MediaKind) bool {
	_, ok := pathTemplates[kind]
	return ok
}
