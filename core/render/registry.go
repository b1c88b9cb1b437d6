package render

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownFormat marks a request for a format with no registered
// renderer. Get wraps it with the supported list.
var ErrUnknownFormat = errors.New("formato não suportado")

type Factory func() Renderer

var registry = map[string]Factory{}

func Register(format string, factory Factory) error {
	format = strings.ToLower(strings.TrimSpace(format))
	if _, exists := registry[format]; exists {
		return fmt.Errorf("render: format %q already registered", format)
	}
	registry[format] = factory
	return nil
}

// Get returns the renderer for a format, or an error listing what is
// supported. That error is the pipeline's only client-facing validation
// failure, raised before any rendering work.
func Get(format string) (Renderer, error) {
	factory, ok := registry[strings.ToLower(strings.TrimSpace(format))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (disponíveis: %s)",
			ErrUnknownFormat, format, strings.Join(List(), ", "))
	}
	return factory(), nil
}

// Supported reports whether a format has a registered renderer.
func Supported(format string) bool {
	_, ok := registry[strings.ToLower(strings.TrimSpace(format))]
	return ok
}

func List() []string {
	formats := make([]string, 0, len(registry))
	for name := range registry {
		formats = append(formats, name)
	}
	sort.Strings(formats)
	return formats
}

func MustRegister(format string, factory Factory) {
	if err := Register(format, factory); err != nil {
		panic(err)
	}
}
