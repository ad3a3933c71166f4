package i18n

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/lingua/pkg/props"
	"github.com/dmitrymomot/lingua/pkg/storage"
)

// DefaultExtension is appended to resource names by StorageLoader.
const DefaultExtension = ".properties"

// ResourceName returns the name of the resource holding the catalog of key
// in the family baseID: "messages" for Root, "messages_de" for German,
// "messages_en_US_POSIX" and "messages_fr__X" for keys with a variant.
func ResourceName(baseID string, key LocaleKey) string {
	if key.IsRoot() {
		return baseID
	}
	return baseID + "_" + key.String()
}

// StorageLoader reads key/value text resources from a storage backend.
type StorageLoader struct {
	store storage.Reader
	ext   string
}

// StorageLoaderOption configures a StorageLoader.
type StorageLoaderOption func(*StorageLoader)

// WithExtension overrides the resource name extension (default ".properties").
func WithExtension(ext string) StorageLoaderOption {
	return func(l *StorageLoader) {
		l.ext = ext
	}
}

// NewStorageLoader creates a loader over store.
func NewStorageLoader(store storage.Reader, opts ...StorageLoaderOption) *StorageLoader {
	l := &StorageLoader{store: store, ext: DefaultExtension}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load opens ResourceName(baseID, key) plus the extension and decodes it.
func (l *StorageLoader) Load(ctx context.Context, baseID string, key LocaleKey) (*props.Catalog, error) {
	name := ResourceName(baseID, key) + l.ext

	rc, err := l.store.Open(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCatalogNotFound, name)
		}
		return nil, err
	}
	defer rc.Close()

	cat, err := props.Load(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidFile, name, err)
	}
	return cat, nil
}

// YAMLLoader reads catalogs from YAML files in an fs.FS. The file for a
// locale is ResourceName(baseID, key) with a ".yaml" or ".yml" extension.
// Nested mappings are flattened into dot-separated keys in document order:
//
//	auth:
//	  login:
//	    title: Sign in
//
// yields the key "auth.login.title".
type YAMLLoader struct {
	fsys fs.FS
}

// NewYAMLLoader creates a loader over fsys.
func NewYAMLLoader(fsys fs.FS) *YAMLLoader {
	return &YAMLLoader{fsys: fsys}
}

// Load reads and flattens the YAML file of key.
func (l *YAMLLoader) Load(ctx context.Context, baseID string, key LocaleKey) (*props.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := ResourceName(baseID, key)
	for _, ext := range []string{".yaml", ".yml"} {
		data, err := fs.ReadFile(l.fsys, path.Clean(name+ext))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", name+ext, err)
		}

		cat, err := DecodeYAML(data)
		if err != nil {
			return nil, fmt.Errorf("%w: parsing %q: %w", ErrInvalidFile, name+ext, err)
		}
		return cat, nil
	}

	return nil, fmt.Errorf("%w: %s.yaml", ErrCatalogNotFound, name)
}

// DecodeYAML flattens a YAML mapping into a catalog. Scalars keep their
// source text; sequences are indexed ("items.0", "items.1").
func DecodeYAML(data []byte) (*props.Catalog, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	cat := props.NewCatalog()
	if len(doc.Content) == 0 {
		return cat, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("top-level node must be a mapping, got %s", kindName(root.Kind))
	}
	if err := flatten(cat, "", root); err != nil {
		return nil, err
	}
	return cat, nil
}

func flatten(cat *props.Catalog, prefix string, n *yaml.Node) error {
	switch n.Kind {
	case yaml.AliasNode:
		return flatten(cat, prefix, n.Alias)
	case yaml.ScalarNode:
		cat.Set(prefix, n.Value)
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Value == "<<" {
				if err := flatten(cat, prefix, v); err != nil {
					return err
				}
				continue
			}
			if err := flatten(cat, join(prefix, k.Value), v); err != nil {
				return err
			}
		}
	case yaml.SequenceNode:
		for i, item := range n.Content {
			if err := flatten(cat, join(prefix, strconv.Itoa(i)), item); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unexpected %s at line %d", kindName(n.Kind), n.Line)
	}
	return nil
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "node"
}

// MemoryLoader serves catalogs held in memory, keyed by ResourceName.
type MemoryLoader map[string]*props.Catalog

// Load returns a copy of the catalog stored under ResourceName(baseID, key),
// so Bundle.Debug never reaches the stored catalogs.
func (m MemoryLoader) Load(_ context.Context, baseID string, key LocaleKey) (*props.Catalog, error) {
	name := ResourceName(baseID, key)
	if cat, ok := m[name]; ok {
		return cat.Clone(), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrCatalogNotFound, name)
}

var (
	_ Loader = (*StorageLoader)(nil)
	_ Loader = (*YAMLLoader)(nil)
	_ Loader = MemoryLoader(nil)
)
