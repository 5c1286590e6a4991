package i18n

import (
	"context"
	"errors"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// Adapter loads a translation catalog.
type Adapter interface {
	Load(ctx context.Context) (Catalog, error)
}

// MapAdapter serves a catalog held in memory, mostly for tests.
type MapAdapter struct {
	Data Catalog
}

func (a *MapAdapter) Load(context.Context) (Catalog, error) {
	out := make(Catalog, len(a.Data))
	out.merge(a.Data)
	return out, nil
}

// FSAdapter reads every .yaml/.yml file in dir of fsys, usually an embed.FS.
// Files are merged in lexical order.
type FSAdapter struct {
	fsys fs.FS
	dir  string
}

func NewFSAdapter(fsys fs.FS, dir string) *FSAdapter {
	if dir == "" {
		dir = "."
	}
	return &FSAdapter{fsys: fsys, dir: dir}
}

func (a *FSAdapter) Load(ctx context.Context) (Catalog, error) {
	entries, err := fs.ReadDir(a.fsys, a.dir)
	if err != nil {
		return nil, errors.Join(ErrReadingSource, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	out := Catalog{}
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.IsDir() || !isYAML(e.Name()) {
			continue
		}
		content, err := fs.ReadFile(a.fsys, path.Join(a.dir, e.Name()))
		if err != nil {
			return nil, errors.Join(ErrReadingSource, err)
		}
		cat, err := ParseYAML(content)
		if err != nil {
			return nil, err
		}
		out.merge(cat)
	}
	return out, nil
}

func isYAML(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
