package filesvc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/yourname/rangefs/internal/httprange"
	"github.com/yourname/rangefs/internal/models"
)

// ReadSpan читает ровно r.Len() байт начиная с r.Start из открытого файла.
func (s *Files) ReadSpan(ctx context.Context, h *Handle, r httprange.ByteRange) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return readSpan(h.f, r)
}

// ReadAll читает файл целиком, без позиционирования.
func (s *Files) ReadAll(ctx context.Context, h *Handle) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	buf := make([]byte, h.Size)
	if _, err := io.ReadFull(h.f, buf); err != nil {
		return nil, wrapRead(err, h.Size)
	}

	return buf, nil
}

// ReadSpan открывает файл по пути, позиционируется на r.Start и читает интервал целиком.
func ReadSpan(path string, r httprange.ByteRange) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readSpan(f, r)
}

func readSpan(rs io.ReadSeeker, r httprange.ByteRange) ([]byte, error) {
	if r.Start < 0 || r.Start > r.End {
		return nil, fmt.Errorf("invalid span %d-%d", r.Start, r.End)
	}

	if _, err := rs.Seek(r.Start, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek to %d: %w", r.Start, err)
	}

	// Файл, укоротившийся после Stat, даёт ErrShortRead.
	buf := make([]byte, r.Len())
	if _, err := io.ReadFull(rs, buf); err != nil {
		return nil, wrapRead(err, r.Len())
	}

	return buf, nil
}

func wrapRead(err error, want int64) error {
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: want %d bytes", models.ErrShortRead, want)
	}
	return fmt.Errorf("read: %w", err)
}
