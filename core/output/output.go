// Package output creates the destination files for CLI exports, with
// optional compression of the rendered artifact.
package output

import (
	"archive/zip"
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/avenir-oabms/relatorios-unificados/internal/logger"
)

const (
	None = "none"
	GZIP = "gzip"
	ZIP  = "zip"
	ZSTD = "zstd"
	LZ4  = "lz4"
)

// Config describes where a CLI export lands.
type Config struct {
	Path        string
	Compression string
	Format      string // inner artifact extension (csv, xlsx, pdf, zip)
}

// CreateWriter opens the output file with the requested compression
// layer, fixing the path extension to the codec when needed.
func CreateWriter(cfg Config) (io.WriteCloser, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Compression)) {
	case None, "":
		return newFileWriter(cfg.Path)
	case GZIP:
		file, err := createWithSuffix(cfg.Path, ".gz")
		if err != nil {
			return nil, err
		}
		zw := gzip.NewWriter(file)
		return newChainWriter(zw, zw, file), nil
	case ZIP:
		return newZipWriter(cfg.Path, cfg.Format)
	case ZSTD:
		file, err := createWithSuffix(cfg.Path, ".zst")
		if err != nil {
			return nil, err
		}
		zw, err := zstd.NewWriter(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("erro ao iniciar compressão zstd: %w", err)
		}
		return newChainWriter(zw, zw, file), nil
	case LZ4:
		file, err := createWithSuffix(cfg.Path, ".lz4")
		if err != nil {
			return nil, err
		}
		lw := lz4.NewWriter(file)
		return newChainWriter(lw, lw, file), nil
	default:
		return nil, fmt.Errorf("compressão não suportada: %q", cfg.Compression)
	}
}

// newFileWriter writes uncompressed through a 256KB buffer.
func newFileWriter(path string) (io.WriteCloser, error) {
	logger.Debug("Criando arquivo de saída: %s", path)
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar arquivo: %w", err)
	}
	return &bufferedWriteCloser{
		Writer:     bufio.NewWriterSize(file, 256*1024),
		underlying: file,
	}, nil
}

// newZipWriter stores the artifact as the single entry of a zip file.
func newZipWriter(path, format string) (io.WriteCloser, error) {
	zipPath := replaceExtension(path, ".zip")
	logger.Debug("Criando arquivo zip de saída: %s", zipPath)

	file, err := os.Create(zipPath)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar arquivo: %w", err)
	}
	zw := zip.NewWriter(file)

	entry, err := zw.Create(zipEntryName(path, format))
	if err != nil {
		zw.Close()
		file.Close()
		return nil, fmt.Errorf("erro ao criar entrada no zip: %w", err)
	}
	return newChainWriter(entry, zw, file), nil
}

func zipEntryName(path, format string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if name == "" {
		name = "relatorio"
	}
	if format != "" && !strings.HasSuffix(strings.ToLower(name), "."+format) {
		name += "." + format
	}
	return name
}

func createWithSuffix(path, suffix string) (*os.File, error) {
	if !strings.HasSuffix(strings.ToLower(path), suffix) {
		path += suffix
	}
	logger.Debug("Criando arquivo comprimido de saída: %s", path)
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar arquivo: %w", err)
	}
	return file, nil
}

func replaceExtension(path, ext string) string {
	old := filepath.Ext(path)
	if strings.EqualFold(old, ext) {
		return path
	}
	return path[:len(path)-len(old)] + ext
}

type bufferedWriteCloser struct {
	*bufio.Writer
	underlying io.WriteCloser
}

func (b *bufferedWriteCloser) Close() error {
	if err := b.Writer.Flush(); err != nil {
		b.underlying.Close()
		return fmt.Errorf("erro ao gravar buffer: %w", err)
	}
	return b.underlying.Close()
}

// chainWriter writes to the head of the stack and closes the whole
// chain in order, keeping the first error.
type chainWriter struct {
	io.Writer
	closers []io.Closer
}

func newChainWriter(w io.Writer, closers ...io.Closer) io.WriteCloser {
	return &chainWriter{Writer: w, closers: closers}
}

func (c *chainWriter) Close() error {
	var first error
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
