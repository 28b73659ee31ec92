package render

import (
	"bufio"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/afero"

	"docs-whitelabel/internal/config"
)

var placeholderRe = regexp.MustCompile(`\{\{[A-Z][A-Z0-9_]*\}\}`)

// Finding is a placeholder left in rendered output.
type Finding struct {
	Path  string
	Line  int
	Token string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s:%d: %s", f.Path, f.Line, f.Token)
}

// Scan walks root and reports every known token placeholder still present in
// files whose extension is in exts. An empty exts matches every file.
func Scan(fsys afero.Fs, root string, exts []string, tokens []config.Token) ([]Finding, error) {
	known := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		known[t.Placeholder()] = true
	}

	var findings []Finding
	err := afero.Walk(fsys, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return ioErr("walk", path, err)
		}
		if info.IsDir() || !matchExt(info.Name(), exts) {
			return nil
		}

		f, err := fsys.Open(path)
		if err != nil {
			return ioErr("open", path, err)
		}
		defer f.Close()

		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
		line := 0
		for scanner.Scan() {
			line++
			for _, m := range placeholderRe.FindAllString(scanner.Text(), -1) {
				if known[m] {
					findings = append(findings, Finding{Path: path, Line: line, Token: m})
				}
			}
		}
		if err := scanner.Err(); err != nil {
			return ioErr("read", path, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return findings, nil
}

func matchExt(name string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	for _, want := range exts {
		if ext == strings.ToLower(strings.TrimPrefix(want, ".")) {
			return true
		}
	}
	return false
}
