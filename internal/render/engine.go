// Package render substitutes whitelabel tokens into template files and
// mirrors template directories into a destination tree.
package render

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"docs-whitelabel/internal/config"
)

// Transform produces dst from the regular file src.
type Transform func(src, dst string, info fs.FileInfo) error

// Stats counts what a render pass touched. Dirs counts only directories
// that did not exist before the pass.
type Stats struct {
	Dirs     int
	Rendered int
	Copied   int
}

// Engine renders and copies templates on a filesystem.
type Engine struct {
	fs     afero.Fs
	logger *slog.Logger
	stats  Stats
}

// NewEngine returns an engine working on fsys. A nil logger discards output.
func NewEngine(fsys afero.Fs, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{fs: fsys, logger: logger}
}

// Stats returns the counters accumulated so far.
func (e *Engine) Stats() Stats { return e.stats }

// RenderFile replaces every occurrence of tokens in src and writes the result
// to dst, creating or truncating it. The parent of dst must exist.
func (e *Engine) RenderFile(src, dst string, values config.Values, tokens []config.Token) error {
	return e.renderer(values, tokens)(src, dst, nil)
}

// CopyFile copies src to dst byte for byte, keeping permission bits.
func (e *Engine) CopyFile(src, dst string) error {
	return e.copyFile(src, dst, nil)
}

// RenderDirectory mirrors src into dst, rendering every regular file.
func (e *Engine) RenderDirectory(src, dst string, values config.Values, tokens []config.Token) error {
	return e.Walk(src, dst, e.renderer(values, tokens))
}

// CopyDirectory mirrors src into dst, copying every regular file verbatim.
func (e *Engine) CopyDirectory(src, dst string) error {
	return e.Walk(src, dst, e.copyFile)
}

// Directory dispatches to RenderDirectory or CopyDirectory by mode.
func (e *Engine) Directory(mode config.Mode, src, dst string, values config.Values, tokens []config.Token) error {
	switch mode {
	case config.ModeRender:
		return e.RenderDirectory(src, dst, values, tokens)
	case config.ModeCopy:
		return e.CopyDirectory(src, dst)
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
}

// Walk creates dst and applies fn to every regular file under src, depth
// first, recreating each subdirectory under dst. Nothing is rolled back on
// failure.
func (e *Engine) Walk(src, dst string, fn Transform) error {
	if nested(e.realPath(src), e.realPath(dst)) {
		return ioErr("walk", dst, ErrNestedDestination)
	}
	return e.walk(src, dst, fn)
}

func (e *Engine) walk(src, dst string, fn Transform) error {
	existed, err := afero.DirExists(e.fs, dst)
	if err != nil {
		return ioErr("stat", dst, err)
	}
	if err := e.fs.MkdirAll(dst, 0o755); err != nil {
		return ioErr("mkdir", dst, err)
	}
	if !existed {
		e.stats.Dirs++
	}

	entries, err := afero.ReadDir(e.fs, src)
	if err != nil {
		return ioErr("readdir", src, err)
	}

	for _, entry := range entries {
		from := filepath.Join(src, entry.Name())
		to := filepath.Join(dst, entry.Name())

		switch mode := entry.Mode(); {
		case mode.IsDir():
			if err := e.walk(from, to, fn); err != nil {
				return err
			}
		case mode.IsRegular():
			if err := fn(from, to, entry); err != nil {
				return err
			}
		default:
			return ioErr("stat", from, fmt.Errorf("%w (%s)", ErrUnsupportedEntry, mode.Type()))
		}
	}
	return nil
}

func (e *Engine) renderer(values config.Values, tokens []config.Token) Transform {
	replacer := values.Replacer(tokens)
	return func(src, dst string, _ fs.FileInfo) error {
		data, err := afero.ReadFile(e.fs, src)
		if err != nil {
			return ioErr("read", src, err)
		}

		if err := afero.WriteFile(e.fs, dst, []byte(replacer.Replace(string(data))), 0o644); err != nil {
			return ioErr("write", dst, err)
		}
		e.stats.Rendered++
		e.logger.Debug("rendered template", "from", src, "to", dst)
		return nil
	}
}

func (e *Engine) copyFile(src, dst string, info fs.FileInfo) error {
	in, err := e.fs.Open(src)
	if err != nil {
		return ioErr("open", src, err)
	}
	defer in.Close()

	if info == nil {
		if info, err = in.Stat(); err != nil {
			return ioErr("stat", src, err)
		}
	}

	out, err := e.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return ioErr("create", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return ioErr("copy", dst, err)
	}
	if err := out.Close(); err != nil {
		return ioErr("close", dst, err)
	}
	e.stats.Copied++
	e.logger.Debug("copied file", "from", src, "to", dst)
	return nil
}

// realPath returns path made absolute with every symlink in its existing
// prefix resolved. Components that do not exist yet are appended as given.
// Filesystems that cannot report links are taken at face value.
func (e *Engine) realPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	lstater, ok := e.fs.(afero.Lstater)
	if !ok {
		return filepath.Clean(path)
	}
	reader, ok := e.fs.(afero.LinkReader)
	if !ok {
		return filepath.Clean(path)
	}

	sep := string(filepath.Separator)
	vol := filepath.VolumeName(path)
	resolved := vol + sep
	todo := strings.Split(path[len(vol):], sep)
	for hops := 0; len(todo) > 0; {
		name := todo[0]
		todo = todo[1:]
		switch name {
		case "", ".":
			continue
		case "..":
			resolved = filepath.Dir(resolved)
			continue
		}

		next := filepath.Join(resolved, name)
		info, lstated, err := lstater.LstatIfPossible(next)
		if err != nil || !lstated || info.Mode()&fs.ModeSymlink == 0 || hops >= maxLinkHops {
			resolved = next
			continue
		}
		target, err := reader.ReadlinkIfPossible(next)
		if err != nil {
			resolved = next
			continue
		}
		hops++
		if filepath.IsAbs(target) {
			tvol := filepath.VolumeName(target)
			resolved = tvol + sep
			target = target[len(tvol):]
		}
		todo = append(strings.Split(target, sep), todo...)
	}
	return resolved
}

const maxLinkHops = 255

// nested reports whether dst lies strictly inside src.
func nested(src, dst string) bool {
	rel, err := filepath.Rel(filepath.Clean(src), filepath.Clean(dst))
	if err != nil || rel == "." {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
