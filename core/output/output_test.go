package output

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

var payload = []byte("Número OAB;Nome Completo\n1001;Ana Souza\n")

func writeArtifact(t *testing.T, cfg Config) {
	t.Helper()
	w, err := CreateWriter(cfg)
	if err != nil {
		t.Fatalf("CreateWriter failed: %v", err)
	}
	if _, err := w.Write(payload); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}

func TestCreateWriter(t *testing.T) {
	tests := []struct {
		name        string
		compression string
		path        string
		wantPath    string
		checkFunc   func(t *testing.T, path string)
	}{
		{
			name:        "uncompressed round-trip",
			compression: None,
			path:        "lista.csv",
			wantPath:    "lista.csv",
			checkFunc: func(t *testing.T, path string) {
				content, err := os.ReadFile(path)
				if err != nil {
					t.Fatalf("Failed to read output: %v", err)
				}
				if !bytes.Equal(content, payload) {
					t.Error("Content mismatch after round-trip")
				}
			},
		},
		{
			name:        "gzip appends extension and compresses",
			compression: GZIP,
			path:        "lista.csv",
			wantPath:    "lista.csv.gz",
			checkFunc: func(t *testing.T, path string) {
				f, err := os.Open(path)
				if err != nil {
					t.Fatalf("Failed to open output: %v", err)
				}
				defer f.Close()

				zr, err := gzip.NewReader(f)
				if err != nil {
					t.Fatalf("Output is not gzip: %v", err)
				}
				content, err := io.ReadAll(zr)
				if err != nil || !bytes.Equal(content, payload) {
					t.Errorf("Gzip round-trip failed: %v", err)
				}
			},
		},
		{
			name:        "zip replaces extension and names the entry",
			compression: ZIP,
			path:        "lista.csv",
			wantPath:    "lista.zip",
			checkFunc: func(t *testing.T, path string) {
				zr, err := zip.OpenReader(path)
				if err != nil {
					t.Fatalf("Output is not a zip: %v", err)
				}
				defer zr.Close()

				if len(zr.File) != 1 {
					t.Fatalf("Expected 1 entry, got %d", len(zr.File))
				}
				if zr.File[0].Name != "lista.csv" {
					t.Errorf("Unexpected entry name: %s", zr.File[0].Name)
				}
			},
		},
		{
			name:        "zstd round-trip",
			compression: ZSTD,
			path:        "lista.csv",
			wantPath:    "lista.csv.zst",
			checkFunc: func(t *testing.T, path string) {
				f, err := os.Open(path)
				if err != nil {
					t.Fatalf("Failed to open output: %v", err)
				}
				defer f.Close()

				zr, err := zstd.NewReader(f)
				if err != nil {
					t.Fatalf("Output is not zstd: %v", err)
				}
				defer zr.Close()

				content, err := io.ReadAll(zr)
				if err != nil || !bytes.Equal(content, payload) {
					t.Errorf("Zstd round-trip failed: %v", err)
				}
			},
		},
		{
			name:        "lz4 round-trip",
			compression: LZ4,
			path:        "lista.csv",
			wantPath:    "lista.csv.lz4",
			checkFunc: func(t *testing.T, path string) {
				f, err := os.Open(path)
				if err != nil {
					t.Fatalf("Failed to open output: %v", err)
				}
				defer f.Close()

				content, err := io.ReadAll(lz4.NewReader(f))
				if err != nil || !bytes.Equal(content, payload) {
					t.Errorf("Lz4 round-trip failed: %v", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeArtifact(t, Config{
				Path:        filepath.Join(dir, tt.path),
				Compression: tt.compression,
				Format:      "csv",
			})

			want := filepath.Join(dir, tt.wantPath)
			if _, err := os.Stat(want); err != nil {
				t.Fatalf("Expected output at %s: %v", want, err)
			}
			tt.checkFunc(t, want)
		})
	}
}

func TestCreateWriterUnsupported(t *testing.T) {
	_, err := CreateWriter(Config{Path: "x", Compression: "rar"})
	if err == nil || !strings.Contains(err.Error(), "rar") {
		t.Errorf("Expected unsupported-compression error, got %v", err)
	}
}
