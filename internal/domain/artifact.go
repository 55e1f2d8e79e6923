package domain

import (
	"fmt"
	"time"
)

const (
	rawStampLayout    = "2006_01_02_15_04"
	prettyStampLayout = "2006_01_02_15"
)

// ArtifactName computes the file name for a rendition written at the given
// time. Names collide for the same kind and zone within one minute (raw) or
// one hour (pretty), so a later capture overwrites the earlier one.
func ArtifactName(r Rendition, zone uint8, at time.Time) string {
	at = at.UTC()
	if r.Pretty {
		return fmt.Sprintf("%s_pretty_zone%d_%s.%s", r.Kind, zone, at.Format(prettyStampLayout), r.Extension)
	}
	return fmt.Sprintf("%s_zone%d_%s.%s", r.Kind, zone, at.Format(rawStampLayout), r.Extension)
}

// FileName is the artifact name for a.
func (a Artifact) FileName() string {
	return ArtifactName(a.Rendition, a.Zone, a.At)
}
