package filesvc

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/yourname/rangefs/internal/models"
)

// Handle хранит открытый файл вместе с метаданными, снятыми при открытии.
// Живёт ровно один запрос; закрывается вызывающим.
type Handle struct {
	models.Resource
	f *os.File
}

// Close закрывает файл.
func (h *Handle) Close() error {
	if h == nil || h.f == nil {
		return nil
	}
	return h.f.Close()
}

// Open находит файл по пути запроса и проверяет, что это читаемый обычный файл.
func (s *Files) Open(ctx context.Context, name string) (*Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := s.resolvePath(name)
	if err != nil {
		return nil, err
	}

	path, err = s.confine(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, classifyOpen(err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %v", models.ErrUnreadable, err)
	}
	if !info.Mode().IsRegular() {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s", models.ErrNotAFile, name)
	}

	return &Handle{
		Resource: models.Resource{
			Name:    name,
			Path:    path,
			Size:    info.Size(),
		},
		f: f,
	}, nil
}

// confine раскрывает символические ссылки и проверяет, что итоговый путь остаётся внутри Root.
func (s *Files) confine(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", classifyOpen(err)
	}

	root, err := filepath.EvalSymlinks(s.Root)
	if err != nil {
		return "", fmt.Errorf("%w: root: %v", models.ErrNotFound, err)
	}

	rel, err := filepath.Rel(root, resolved)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q resolves outside root", models.ErrForbidden, path)
	}

	return resolved, nil
}

func classifyOpen(err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: %v", models.ErrUnreadable, err)
	}
	return fmt.Errorf("%w: %v", models.ErrNotFound, err)
}
