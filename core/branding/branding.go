// Package branding locates the institutional logo embedded in exported
// PDF headers. The logo is optional; exports render without it.
package branding

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/avenir-oabms/relatorios-unificados/internal/logger"
)

// candidates are the conventional locations probed when LOGO_PATH is
// not set, relative to the working directory.
var candidates = []string{
	filepath.Join("assets", "logo.png"),
	filepath.Join("assets", "logo.jpg"),
	filepath.Join("static", "logo.png"),
	"logo.png",
}

var (
	once sync.Once
	data []byte
)

// Logo returns the logo image bytes, or nil when no logo is available.
// The filesystem is probed once; later calls reuse the result.
func Logo(configuredPath string) []byte {
	once.Do(func() {
		paths := candidates
		if configuredPath != "" {
			paths = append([]string{configuredPath}, candidates...)
		}
		for _, path := range paths {
			b, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			if len(b) == 0 {
				continue
			}
			logger.Debug("Logotipo carregado de %s (%d bytes)", path, len(b))
			data = b
			return
		}
		logger.Debug("Nenhum logotipo encontrado, exportações seguem sem imagem")
	})
	return data
}
