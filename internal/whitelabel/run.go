// Package whitelabel runs a profile: it renders the profile's single-file
// templates, optionally validates rendered OpenAPI documents and then
// mirrors the profile's template trees.
package whitelabel

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"docs-whitelabel/internal/config"
	"docs-whitelabel/internal/ctxlog"
	"docs-whitelabel/internal/openapi"
	"docs-whitelabel/internal/render"
)

// Request describes one whitelabel run.
type Request struct {
	Root     string
	Profile  config.Profile
	Values   config.Values
	Validate bool
}

// Result summarises a completed run.
type Result struct {
	Stats     render.Stats
	Documents []openapi.Summary
}

// Run executes req against fsys. File targets are processed first, in order,
// then tree targets. OpenAPI validation runs only when req.Validate is set. The first failure stops the run and leaves whatever was
// already written in place.
func Run(ctx context.Context, fsys afero.Fs, req Request) (Result, error) {
	logger := ctxlog.FromContext(ctx).With("profile", req.Profile.Name)
	engine := render.NewEngine(fsys, logger)

	var res Result
	for _, f := range req.Profile.Files {
		from := filepath.Join(req.Root, f.From)
		to := filepath.Join(req.Root, f.To)

		if err := engine.RenderFile(from, to, req.Values, req.Profile.Tokens); err != nil {
			return res, fmt.Errorf("render %s: %w", f.From, err)
		}

		if f.Validate && req.Validate {
			summary, err := openapi.ValidateFile(ctx, fsys, to)
			if err != nil {
				return res, err
			}
			logger.Debug("validated OpenAPI document", "path", to, "title", summary.Title, "paths", summary.Paths)
			res.Documents = append(res.Documents, summary)
		}
	}

	for _, t := range req.Profile.Trees {
		from := filepath.Join(req.Root, t.From)
		to := filepath.Join(req.Root, t.To)

		if err := engine.Directory(t.Mode, from, to, req.Values, req.Profile.Tokens); err != nil {
			return res, fmt.Errorf("%s %s: %w", t.Mode, t.From, err)
		}
		logger.Debug("mirrored tree", "from", from, "to", to, "mode", t.Mode)
	}

	res.Stats = engine.Stats()
	logger.Info("whitelabel complete",
		"company", req.Values.CompanyName,
		"endpoint", req.Values.APIEndpoint,
		"rendered", res.Stats.Rendered,
		"copied", res.Stats.Copied,
		"dirs", res.Stats.Dirs,
	)
	return res, nil
}
