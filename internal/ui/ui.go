// Package ui provides the spinner and progress bar used by the CLI
// export path. Both are no-ops when constructed but never started.
package ui

import (
	"context"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/yarlson/pin"
)

// NewProgressBar returns an indeterminate row counter for streaming
// exports.
func NewProgressBar() *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("Exportando registros"),
		progressbar.OptionEnableColorCodes(false),
		progressbar.OptionSetWriter(os.Stdout),
		progressbar.OptionShowBytes(false),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(15),
	)
}

// Spinner wraps pin with nil-safe Start/Update/Stop.
type Spinner struct {
	p      *pin.Pin
	cancel context.CancelFunc
}

func NewSpinner() *Spinner {
	p := pin.New("Processando...",
		pin.WithSpinnerColor(pin.ColorCyan),
		pin.WithTextColor(pin.ColorYellow))
	return &Spinner{p: p}
}

func (s *Spinner) Start() {
	if s == nil || s.p == nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.p.Start(ctx)
}

func (s *Spinner) Update(message string) {
	if s == nil || s.p == nil {
		return
	}
	s.p.UpdateMessage(message)
}

func (s *Spinner) Stop(message string) {
	if s == nil || s.p == nil {
		return
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.p.Stop(message)
}
