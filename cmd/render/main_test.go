package main

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/marine-bulletin-etl/internal/domain"
)

func captureFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cap/bmr.xml", []byte(`<echeance><![CDATA[a]]><echeance><![CDATA[b]]>`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/cap/bms.json", []byte(`{"report_title":"t"}`), 0o644))
	return fs
}

func TestRender_BMR(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd(captureFs(t))
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"bmr", "/cap/bmr.xml"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "a\n\nb", out.String())
}

func TestRender_MalformedBMS(t *testing.T) {
	var out bytes.Buffer
	err := render(captureFs(t), &out, "BMS", "/cap/bms.json")
	require.ErrorIs(t, err, domain.ErrMalformedContent)
	assert.Empty(t, out.String())
}

func TestRender_UnknownKind(t *testing.T) {
	err := render(captureFs(t), &bytes.Buffer{}, "bulletin", "/cap/bms.json")
	require.Error(t, err)
}

func TestRender_MissingFile(t *testing.T) {
	err := render(captureFs(t), &bytes.Buffer{}, "bmr", "/cap/absent.xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read capture")
}

func TestRender_ArgsRequired(t *testing.T) {
	cmd := newRootCmd(captureFs(t))
	cmd.SetArgs([]string{"bmr"})
	require.Error(t, cmd.Execute())
}
