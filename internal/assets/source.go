package assets

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zip"
)

// ZipSource reads from a zip or jar archive.
type ZipSource struct {
	name  string
	rc    *zip.ReadCloser
	files map[string]*zip.File
}

// OpenZip opens an archive and indexes its entries.
func OpenZip(path string) (*ZipSource, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}

	files := make(map[string]*zip.File, len(rc.File))
	for _, f := range rc.File {
		if f.FileInfo().IsDir() {
			continue
		}
		files[normalize(f.Name)] = f
	}

	return &ZipSource{name: filepath.Base(path), rc: rc, files: files}, nil
}

// Name returns the archive file name.
func (z *ZipSource) Name() string { return z.name }

// Read returns the uncompressed content of path.
func (z *ZipSource) Read(path string) ([]byte, error) {
	f, ok := z.files[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s in %s", ErrNotFound, path, z.name)
	}

	r, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s in %s: %w", path, z.name, err)
	}
	defer r.Close()

	return io.ReadAll(r)
}

// List returns entries under prefix.
func (z *ZipSource) List(prefix string) []string {
	var out []string
	for p := range z.files {
		if strings.HasPrefix(p, prefix) {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

// Close closes the archive.
func (z *ZipSource) Close() error {
	return z.rc.Close()
}

// DirSource reads from an unpacked resource pack directory.
type DirSource struct {
	root string
}

// NewDirSource creates a source rooted at dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{root: dir}
}

// Name returns the directory path.
func (d *DirSource) Name() string { return d.root }

// Read reads root/path.
func (d *DirSource) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(d.root, filepath.FromSlash(path)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s in %s", ErrNotFound, path, d.root)
		}
		return nil, err
	}
	return data, nil
}

// List walks the directory below prefix.
func (d *DirSource) List(prefix string) []string {
	var out []string
	base := filepath.Join(d.root, filepath.FromSlash(prefix))
	_ = filepath.WalkDir(base, func(p string, entry fs.DirEntry, err error) error {
		if err != nil || entry.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(d.root, p)
		if err != nil {
			return nil
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	sort.Strings(out)
	return out
}

// Close is a no-op.
func (d *DirSource) Close() error { return nil }

// MemSource serves files from memory. Useful for generated packs and tests.
type MemSource struct {
	name  string
	files map[string][]byte
}

// NewMemSource creates a source over files keyed by slash separated path.
func NewMemSource(name string, files map[string][]byte) *MemSource {
	m := &MemSource{name: name, files: make(map[string][]byte, len(files))}
	for p, data := range files {
		m.files[normalize(p)] = data
	}
	return m
}

// Name returns the source name.
func (m *MemSource) Name() string { return m.name }

// Read returns the file content.
func (m *MemSource) Read(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s in %s", ErrNotFound, path, m.name)
	}
	return data, nil
}

// List returns paths under prefix.
func (m *MemSource) List(prefix string) []string {
	var out []string
	for p := range m.files {
		if strings.HasPrefix(p, prefix) {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

// Close is a no-op.
func (m *MemSource) Close() error { return nil }
