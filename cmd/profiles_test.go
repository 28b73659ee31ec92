package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetProfilesFlags(t *testing.T) {
	t.Helper()
	profilesCmd.ResetFlags()
	defineProfilesFlags()
	t.Cleanup(func() {
		profilesCmd.ResetFlags()
		defineProfilesFlags()
	})
}

func TestProfiles_List(t *testing.T) {
	resetProfilesFlags(t)

	code, stdout, stderr := run(t, "profiles")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "NAME")
	assert.Contains(t, stdout, "templates")
	assert.Contains(t, stdout, "COMPANY_NAME,API_ENDPOINT,COMPANY_SLUG")
	assert.Contains(t, stdout, "snippets")
}

func TestProfiles_Show(t *testing.T) {
	resetProfilesFlags(t)

	code, stdout, stderr := run(t, "profiles", "snippets")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "tokens: COMPANY_NAME,API_ENDPOINT\n")
	assert.Contains(t, stdout, "file    templates/openapi.json.tmpl -> openapi.json (openapi)\n")
	assert.Contains(t, stdout, "copy    snippets/ -> ../snippets/whitelabel/\n")
}

func TestProfiles_WithConfig(t *testing.T) {
	resetProfilesFlags(t)
	configPath := filepath.Join(t.TempDir(), "whitelabel.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
profiles:
  - name: partner
    description: Partner portal
    trees:
      - from: pages
        to: out
`), 0644))

	code, stdout, stderr := run(t, "profiles", "--config="+configPath)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "partner")
	assert.Contains(t, stdout, "Partner portal")
}

func TestProfiles_Unknown(t *testing.T) {
	resetProfilesFlags(t)

	code, _, stderr := run(t, "profiles", "nope")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "unknown profile")
}
