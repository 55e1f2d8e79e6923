package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtifactName(t *testing.T) {
	at := time.Date(2024, time.April, 26, 15, 10, 42, 0, time.UTC)
	raw := Rendition{Kind: KindBMS, Extension: "json"}
	pretty := Rendition{Kind: KindBMR, Extension: "txt", Pretty: true}

	assert.Equal(t, "BMS_zone4_2024_04_26_15_10.json", ArtifactName(raw, 4, at))
	assert.Equal(t, "BMR_pretty_zone4_2024_04_26_15.txt", ArtifactName(pretty, 4, at))

	t.Run("converted to UTC", func(t *testing.T) {
		paris := time.FixedZone("CEST", 2*60*60)
		assert.Equal(t, "BMS_zone4_2024_04_26_15_10.json", ArtifactName(raw, 4, at.In(paris)))
	})

	t.Run("raw names collide within a minute", func(t *testing.T) {
		assert.Equal(t, ArtifactName(raw, 4, at), ArtifactName(raw, 4, at.Add(17*time.Second)))
		assert.NotEqual(t, ArtifactName(raw, 4, at), ArtifactName(raw, 4, at.Add(time.Minute)))
	})

	t.Run("pretty names collide within an hour", func(t *testing.T) {
		assert.Equal(t, ArtifactName(pretty, 4, at), ArtifactName(pretty, 4, at.Add(49*time.Minute)))
		assert.NotEqual(t, ArtifactName(pretty, 4, at), ArtifactName(pretty, 4, at.Add(50*time.Minute)))
	})

	t.Run("zone is part of the name", func(t *testing.T) {
		assert.NotEqual(t, ArtifactName(raw, 4, at), ArtifactName(raw, 3, at))
	})
}

func TestArtifact_FileName(t *testing.T) {
	a := Artifact{
		Rendition: Rendition{Kind: KindBMR, Extension: "xml"},
		Zone:      2,
		At:        time.Date(2025, time.January, 2, 3, 4, 5, 0, time.UTC),
	}
	assert.Equal(t, "BMR_zone2_2025_01_02_03_04.xml", a.FileName())
}

func TestCoastalZone(t *testing.T) {
	name, err := CoastalZone(1, 4)
	require.NoError(t, err)
	assert.Equal(t, "Penmarc'h - Aiguillon", name)

	name, err = CoastalZone(2, 4)
	require.NoError(t, err)
	assert.Equal(t, "Corse", name)

	_, err = CoastalZone(2, 5)
	require.Error(t, err)
	_, err = CoastalZone(3, 1)
	require.Error(t, err)
	_, err = CoastalZone(0, 0)
	require.Error(t, err)
}

func TestReportDomain(t *testing.T) {
	assert.Equal(t, "BMSCOTE-01-04", ReportDomain(KindBMS, 1, 4))
	assert.Equal(t, "BMRCOTE-02-03", ReportDomain(KindBMR, 2, 3))
}

func TestParseReportKind(t *testing.T) {
	k, err := ParseReportKind("bmr")
	require.NoError(t, err)
	assert.Equal(t, KindBMR, k)

	k, err = ParseReportKind(" BMS ")
	require.NoError(t, err)
	assert.Equal(t, KindBMS, k)

	_, err = ParseReportKind("bulletin")
	require.Error(t, err)

	assert.Equal(t, "json", KindBMS.RawExtension())
	assert.Equal(t, "xml", KindBMR.RawExtension())
}
