package rangeclient

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

const (
	progressBarWidth     = 32
	progressRenderPeriod = 120 * time.Millisecond
)

// progressBar рисует ASCII-индикатор скачивания в out (stdout занят телом файла).
type progressBar struct {
	mu sync.Mutex

	out        io.Writer
	label      string
	total      int64
	done       int64
	lastRender time.Time
	lastWidth  int
	closed     bool
}

func newProgressBar(out io.Writer, label string, total int64) *progressBar {
	return &progressBar{out: out, label: label, total: total}
}

// start рисует нулевое состояние до первого чтения.
func (p *progressBar) start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.drawLocked("", false)
}

func (p *progressBar) add(n int) {
	if n <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.done += int64(n)
	if time.Since(p.lastRender) >= progressRenderPeriod {
		p.drawLocked("", false)
	}
}

// finish рисует финальную строку один раз; err != nil помечает загрузку как неудачную.
func (p *progressBar) finish(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true

	suffix := " ✓"
	if err != nil {
		suffix = fmt.Sprintf(" ✗ %v", err)
	}
	p.drawLocked(suffix, true)
}

func (p *progressBar) drawLocked(suffix string, final bool) {
	line := p.line() + suffix

	pad := ""
	if p.lastWidth > len(line) {
		pad = strings.Repeat(" ", p.lastWidth-len(line))
	}
	p.lastWidth = len(line)
	p.lastRender = time.Now()

	end := ""
	if final {
		end = "\n"
	}
	fmt.Fprintf(p.out, "\r%s%s%s", line, pad, end)
}

func (p *progressBar) line() string {
	if p.total <= 0 {
		return fmt.Sprintf("%s %s transferred", p.label, humanBytes(p.done))
	}

	ratio := min(float64(p.done)/float64(p.total), 1)
	filled := min(int(ratio*progressBarWidth+0.5), progressBarWidth)

	return fmt.Sprintf("%s [%s%s] %3d%% %s/%s",
		p.label,
		strings.Repeat("=", filled),
		strings.Repeat(" ", progressBarWidth-filled),
		int(ratio*100+0.5),
		humanBytes(p.done),
		humanBytes(p.total),
	)
}

// progressReadCloser двигает индикатор по мере чтения тела.
type progressReadCloser struct {
	io.ReadCloser
	bar *progressBar
}

func newProgressReadCloser(inner io.ReadCloser, bar *progressBar) io.ReadCloser {
	return &progressReadCloser{ReadCloser: inner, bar: bar}
}

func (p *progressReadCloser) Read(b []byte) (int, error) {
	n, err := p.ReadCloser.Read(b)
	p.bar.add(n)
	switch {
	case err == io.EOF:
		p.bar.finish(nil)
	case err != nil:
		p.bar.finish(err)
	}
	return n, err
}

func (p *progressReadCloser) Close() error {
	err := p.ReadCloser.Close()
	p.bar.finish(err)
	return err
}

func humanBytes(v int64) string {
	const unit = 1024
	if v < unit {
		return fmt.Sprintf("%d B", v)
	}
	units := []string{"KB", "MB", "GB", "TB", "PB"}
	value := float64(v) / unit
	i := 0
	for value >= unit && i < len(units)-1 {
		value /= unit
		i++
	}
	return fmt.Sprintf("%.1f %s", value, units[i])
}
