package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"minic/internal/diag"
	"minic/internal/ir"
	"minic/internal/source"
	"minic/internal/symbols"
)

// Current schema version - increment when Artifact format changes
const diskCacheSchemaVersion uint16 = 1

// Digest is a content hash as computed by source.FileSet.
type Digest = [32]byte

// DiskCache хранит артефакты чистых компиляций по хэшу содержимого файла.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// QuadArtifact is one serialized quadruple.
type QuadArtifact struct {
	Op     uint8
	Arg1K  uint8
	Arg1   string
	Arg2K  uint8
	Arg2   string
	ResK   uint8
	Result string
}

// SymbolArtifact is one serialized symbol table entry.
type SymbolArtifact struct {
	Name        string
	Placeholder bool
}

// Artifact stores the outputs of a clean compilation for fast recompilation.
// Diagnostics and fixes are never cached: a cached entry implies none.
type Artifact struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Path        string
	ContentHash Digest

	Symbols []SymbolArtifact
	Quads   []QuadArtifact
	Asm     string
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// OpenDiskCacheAt initializes a disk cache rooted at an explicit directory.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Для удобства читаемости/очистки — подкаталог "units".
	return filepath.Join(c.dir, "units", hexKey+".mp")
}

// Put serializes and writes an artifact to the disk cache.
func (c *DiskCache) Put(key Digest, payload *Artifact) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err = os.Remove(f.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
			fmt.Printf("failed to remove temp file: %v", err)
		}
	}()

	enc := msgpack.NewEncoder(f)
	err = enc.Encode(payload)
	if err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes an artifact from the disk cache.
func (c *DiskCache) Get(key Digest, out *Artifact) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	p := c.pathFor(key)
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		_ = f.Close()
	}()
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим в фоне
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

// newArtifact converts a clean compilation result into a cacheable payload.
func newArtifact(path string, res *Result) *Artifact {
	a := &Artifact{
		Schema:      diskCacheSchemaVersion,
		Path:        path,
		ContentHash: res.File.Hash,
		Asm:         res.Asm,
	}
	for _, sym := range res.Table.Symbols() {
		a.Symbols = append(a.Symbols, SymbolArtifact{
			Name:        sym.Name,
			Placeholder: sym.Placeholder,
		})
	}
	for _, q := range res.Quads {
		a.Quads = append(a.Quads, QuadArtifact{
			Op:     uint8(q.Op),
			Arg1K:  uint8(q.Arg1.Kind),
			Arg1:   q.Arg1.Text,
			Arg2K:  uint8(q.Arg2.Kind),
			Arg2:   q.Arg2.Text,
			ResK:   uint8(q.Result.Kind),
			Result: q.Result.Text,
		})
	}
	return a
}

// toResult rebuilds a Result from a cached artifact. Spans are not cached, so
// the restored symbol table carries zero spans.
func (a *Artifact) toResult(fs *source.FileSet, file *source.File) *Result {
	if a == nil || a.Schema != diskCacheSchemaVersion {
		return nil
	}
	table := symbols.NewTable()
	for _, sym := range a.Symbols {
		if sym.Placeholder {
			table.DeclarePlaceholder(sym.Name, source.Span{File: file.ID})
		} else {
			table.Declare(sym.Name, source.Span{File: file.ID})
		}
	}
	quads := make([]ir.Quad, 0, len(a.Quads))
	for _, q := range a.Quads {
		quads = append(quads, ir.Quad{
			Op:     ir.Op(q.Op),
			Arg1:   ir.Operand{Kind: ir.OperandKind(q.Arg1K), Text: q.Arg1},
			Arg2:   ir.Operand{Kind: ir.OperandKind(q.Arg2K), Text: q.Arg2},
			Result: ir.Operand{Kind: ir.OperandKind(q.ResK), Text: q.Result},
		})
	}
	return &Result{
		FileSet: fs,
		File:    file,
		Table:   table,
		Quads:   quads,
		Asm:     a.Asm,
		LexBag:  diag.NewBag(0),
		SynBag:  diag.NewBag(0),
		SemaBag: diag.NewBag(0),
	}
}
