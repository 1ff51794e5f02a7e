// Package catalog loads and caches parsed schema definitions from a
// definitions directory with base_classes/ and applications/
// subdirectories, each file named <schema>.nxdl.xml.
package catalog

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	nxerrors "github.com/nxvalidate/nxvalidate/errors"
	"github.com/nxvalidate/nxvalidate/internal/nxdl"
)

const (
	// BaseDir holds base class definition files.
	BaseDir = "base_classes"
	// ApplicationDir holds application definition files.
	ApplicationDir = "applications"

	fileSuffix = ".nxdl.xml"
)

// Catalog resolves schema names to parsed definitions. Definitions are
// immutable once parsed and cached for the lifetime of the catalog;
// Reload is the only invalidation. A Catalog may be shared across
// goroutines.
type Catalog struct {
	fsys fs.FS

	mu    sync.Mutex
	cache map[string]*nxdl.Definition
}

// New creates a catalog over the given definitions filesystem.
func New(fsys fs.FS) *Catalog {
	return &Catalog{
		fsys:  fsys,
		cache: make(map[string]*nxdl.Definition),
	}
}

// Load resolves a schema by name, searching application definitions
// first and base classes second. A name present in both subdirectories
// resolves to the application definition; the precedence is deliberate,
// a collision is not an error.
func (c *Catalog) Load(name string) (*nxdl.Definition, error) {
	def, err := c.LoadCategory(name, nxdl.CategoryApplication)
	if err == nil {
		return def, nil
	}
	if !nxerrors.IsCode(err, nxerrors.CodeSchemaNotFound) {
		return nil, err
	}
	return c.LoadCategory(name, nxdl.CategoryBase)
}

// LoadCategory resolves a schema by name within one schema family.
func (c *Catalog) LoadCategory(name string, cat nxdl.Category) (*nxdl.Definition, error) {
	if name == "" {
		return nil, nxerrors.NewSchemaError(nxerrors.CodeSchemaNotFound, name, "empty schema name")
	}
	key := cat.String() + "/" + name

	c.mu.Lock()
	if def, ok := c.cache[key]; ok {
		c.mu.Unlock()
		if def == nil {
			return nil, notFound(name, cat)
		}
		return def, nil
	}
	c.mu.Unlock()

	def, err := c.read(name, cat)
	if err != nil {
		if nxerrors.IsCode(err, nxerrors.CodeSchemaNotFound) {
			// negative entries keep repeated lookups of undefined
			// classes from hitting the filesystem
			c.mu.Lock()
			c.cache[key] = nil
			c.mu.Unlock()
		}
		return nil, err
	}

	c.mu.Lock()
	c.cache[key] = def
	c.mu.Unlock()
	return def, nil
}

// LoadFile parses an explicitly supplied definition file from the host
// filesystem, outside the catalog's directory layout. The result is not
// cached.
func (c *Catalog) LoadFile(filename string) (*nxdl.Definition, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, nxerrors.NewSchemaError(nxerrors.CodeSourceUnavailable, filename, "%v", err)
	}
	defer f.Close()

	def, err := nxdl.Parse(f, filename)
	if err != nil {
		return nil, nxerrors.NewSchemaError(nxerrors.CodeSchemaParse, filename, "%v", err)
	}
	return def, nil
}

// Reload discards every cached definition. Subsequent loads re-read the
// filesystem.
func (c *Catalog) Reload() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string]*nxdl.Definition)
}

// Names lists the schema names available in one family, sorted.
func (c *Catalog) Names(cat nxdl.Category) ([]string, error) {
	entries, err := fs.ReadDir(c.fsys, dirFor(cat))
	if err != nil {
		return nil, nxerrors.NewSchemaError(nxerrors.CodeSourceUnavailable, dirFor(cat), "%v", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileSuffix) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), fileSuffix))
	}
	sort.Strings(names)
	return names, nil
}

func (c *Catalog) read(name string, cat nxdl.Category) (*nxdl.Definition, error) {
	if c.fsys == nil {
		return nil, nxerrors.NewSchemaError(nxerrors.CodeSourceUnavailable, name, "no definitions directory configured")
	}
	location := path.Join(dirFor(cat), name+fileSuffix)
	f, err := c.fsys.Open(location)
	if err != nil {
		return nil, notFound(name, cat)
	}
	defer f.Close()

	def, err := nxdl.Parse(f, location)
	if err != nil {
		return nil, nxerrors.NewSchemaError(nxerrors.CodeSchemaParse, location, "%v", err)
	}
	if def.Name != name {
		return nil, nxerrors.NewSchemaError(nxerrors.CodeSchemaParse, location, "definition is named %q", def.Name)
	}
	return def, nil
}

func dirFor(cat nxdl.Category) string {
	if cat == nxdl.CategoryApplication {
		return ApplicationDir
	}
	return BaseDir
}

func notFound(name string, cat nxdl.Category) error {
	return nxerrors.NewSchemaError(nxerrors.CodeSchemaNotFound, name,
		fmt.Sprintf("no %s definition file", cat))
}
