package whitelabel

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docs-whitelabel/internal/config"
	"docs-whitelabel/internal/ctxlog"
	"docs-whitelabel/internal/openapi"
	"docs-whitelabel/internal/render"
)

const openapiTemplate = `{
  "openapi": "3.0.3",
  "info": {"title": "{{COMPANY_NAME}} API", "version": "1.0.0"},
  "servers": [{"url": "https://{{API_ENDPOINT}}"}],
  "paths": {}
}`

func seed(t *testing.T, fsys afero.Fs, files map[string]string) {
	t.Helper()
	for path, content := range files {
		require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0o644))
	}
}

func read(t *testing.T, fsys afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fsys, path)
	require.NoError(t, err)
	return string(data)
}

func profile(t *testing.T, name string) config.Profile {
	t.Helper()
	p, err := config.DefaultRegistry().Get(name)
	require.NoError(t, err)
	return p
}

func values(t *testing.T) config.Values {
	t.Helper()
	v, err := config.NewValues("Acme Corp", "api.acme.io")
	require.NoError(t, err)
	return v
}

func TestRun_TemplatesProfile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	seed(t, fsys, map[string]string{
		"/docs/whitelabel/templates/openapi.json":           openapiTemplate,
		"/docs/whitelabel/templates/snippets/auth.mdx":      "export {{COMPANY_SLUG}}_TOKEN",
		"/docs/whitelabel/templates/snippets/deep/host.mdx": "{{API_ENDPOINT}}",
	})

	var buf bytes.Buffer
	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(&buf, nil)))

	res, err := Run(ctx, fsys, Request{
		Root:     "/docs/whitelabel",
		Profile:  profile(t, "templates"),
		Values:   values(t),
		Validate: true,
	})
	require.NoError(t, err)

	assert.Contains(t, read(t, fsys, "/docs/whitelabel/openapi.json"), `"title": "Acme Corp API"`)
	assert.Equal(t, "export ACME_CORP_TOKEN", read(t, fsys, "/docs/snippets/whitelabel/auth.mdx"))
	assert.Equal(t, "api.acme.io", read(t, fsys, "/docs/snippets/whitelabel/deep/host.mdx"))

	assert.Equal(t, render.Stats{Dirs: 2, Rendered: 3}, res.Stats)
	require.Len(t, res.Documents, 1)
	assert.Equal(t, []string{"https://api.acme.io"}, res.Documents[0].Servers)
	assert.Contains(t, buf.String(), "whitelabel complete")
	assert.Contains(t, buf.String(), "profile=templates")
}

func TestRun_SnippetsProfile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	seed(t, fsys, map[string]string{
		"/docs/endpoints/templates/config.mdx.tmpl":   "name: {{COMPANY_NAME}} slug: {{COMPANY_SLUG}}",
		"/docs/endpoints/templates/openapi.json.tmpl": openapiTemplate,
		"/docs/endpoints/snippets/static.mdx":         "{{COMPANY_NAME}} untouched",
	})

	res, err := Run(context.Background(), fsys, Request{
		Root:     "/docs/endpoints",
		Profile:  profile(t, "snippets"),
		Values:   values(t),
		Validate: true,
	})
	require.NoError(t, err)

	// config.mdx is rendered into the snippet source before the copy.
	assert.Equal(t, "name: Acme Corp slug: {{COMPANY_SLUG}}", read(t, fsys, "/docs/endpoints/snippets/config.mdx"))
	assert.Equal(t, "name: Acme Corp slug: {{COMPANY_SLUG}}", read(t, fsys, "/docs/snippets/whitelabel/config.mdx"))
	assert.Equal(t, "{{COMPANY_NAME}} untouched", read(t, fsys, "/docs/snippets/whitelabel/static.mdx"))
	assert.Equal(t, render.Stats{Dirs: 1, Rendered: 2, Copied: 2}, res.Stats)
}

func TestRun_MissingTemplate(t *testing.T) {
	fsys := afero.NewMemMapFs()

	_, err := Run(context.Background(), fsys, Request{
		Root:    "/docs/whitelabel",
		Profile: profile(t, "templates"),
		Values:  values(t),
	})
	var ioErr *render.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "read", ioErr.Op)
	assert.Contains(t, err.Error(), "templates/openapi.json")
}

func TestRun_InvalidOpenAPI(t *testing.T) {
	fsys := afero.NewMemMapFs()
	seed(t, fsys, map[string]string{
		"/w/templates/openapi.json":   `{"title": "{{COMPANY_NAME}}"}`,
		"/w/templates/snippets/a.mdx": "a",
	})
	req := Request{Root: "/w", Profile: profile(t, "templates"), Values: values(t), Validate: true}

	_, err := Run(context.Background(), fsys, req)
	var vErr *openapi.ValidationError
	require.ErrorAs(t, err, &vErr)

	exists, err := afero.Exists(fsys, "/snippets/whitelabel/a.mdx")
	require.NoError(t, err)
	assert.False(t, exists, "trees are not rendered after a failed validation")

	req.Validate = false
	_, err = Run(context.Background(), fsys, req)
	require.NoError(t, err)
	assert.Equal(t, `{"title": "Acme Corp"}`, read(t, fsys, "/w/openapi.json"))
}

func TestRun_RerunIsIdempotent(t *testing.T) {
	fsys := afero.NewMemMapFs()
	seed(t, fsys, map[string]string{
		"/w/templates/openapi.json":   openapiTemplate,
		"/w/templates/snippets/a.mdx": "{{COMPANY_NAME}}",
	})
	req := Request{Root: "/w", Profile: profile(t, "templates"), Values: values(t), Validate: true}

	_, err := Run(context.Background(), fsys, req)
	require.NoError(t, err)
	first := read(t, fsys, "/snippets/whitelabel/a.mdx")

	res, err := Run(context.Background(), fsys, req)
	require.NoError(t, err)
	assert.Equal(t, first, read(t, fsys, "/snippets/whitelabel/a.mdx"))
	assert.Zero(t, res.Stats.Dirs)
}
