package EdgeList

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/intel/forTriangleBenchGo/MatrixMarket"
	"github.com/klauspost/compress/gzip"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Loader reads edge-list files through a Cache. Files ending in .bz2 or .gz
// are decompressed; files ending in .mtx (after decompression suffixes are
// removed) are read as Matrix Market coordinate files.
type Loader struct {
	fs     afero.Fs
	cache  *Cache
	logger *zap.Logger
}

type Option func(*Loader)

func WithFs(fs afero.Fs) Option {
	return func(l *Loader) { l.fs = fs }
}

func WithCache(cache *Cache) Option {
	return func(l *Loader) { l.cache = cache }
}

func WithLogger(logger *zap.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		fs:     afero.NewOsFs(),
		cache:  NewCache(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Loader) Cache() *Cache {
	return l.cache
}

// Load returns the coordinate list stored at path. A request for the cached
// path is answered without touching the filesystem.
func (l *Loader) Load(path string) (CoordinateList, error) {
	if list, ok := l.cache.Lookup(path); ok {
		l.logger.Debug("graph served from cache", zap.String("path", path), zap.Int("edges", len(list.Edges)))
		return list, nil
	}
	l.logger.Info("reading graph", zap.String("path", path))
	list, err := l.read(path)
	if err != nil {
		return CoordinateList{}, fmt.Errorf("load graph %v: %w", path, err)
	}
	l.cache.Store(path, list)
	l.logger.Info("graph read",
		zap.String("path", path),
		zap.Int("edges", len(list.Edges)),
		zap.Int("maxRow", list.MaxRow),
		zap.Int("maxCol", list.MaxCol),
	)
	return list, nil
}

func (l *Loader) read(path string) (list CoordinateList, err error) {
	f, err := l.fs.Open(path)
	if err != nil {
		return
	}
	defer func() {
		if e := f.Close(); err == nil {
			err = e
		}
	}()

	var r io.Reader = f
	name := strings.ToLower(path)
	switch ext := filepath.Ext(name); ext {
	case ".bz2":
		bz, e := bzip2.NewReader(f, nil)
		if e != nil {
			return list, e
		}
		defer bz.Close()
		r = bz
		name = strings.TrimSuffix(name, ext)
	case ".gz":
		gz, e := gzip.NewReader(f)
		if e != nil {
			return list, e
		}
		defer gz.Close()
		r = gz
		name = strings.TrimSuffix(name, ext)
	}

	if filepath.Ext(name) == ".mtx" {
		return readMatrixMarket(r)
	}
	return Parse(r)
}

// readMatrixMarket takes its bounds from the size line rather than the
// entries, so vertices without edges still count towards the dimension.
func readMatrixMarket(r io.Reader) (list CoordinateList, err error) {
	header, scanner, err := MatrixMarket.ReadHeader(r)
	if err != nil {
		return
	}
	rows, cols, err := MatrixMarket.Read(header, scanner)
	if err != nil {
		return
	}
	list.Edges = make([]Edge, 0, len(rows))
	for k := range rows {
		list.add(rows[k], cols[k])
	}
	list.MaxRow = header.NRows - 1
	list.MaxCol = header.NCols - 1
	return list, nil
}
