package filesvc

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yourname/rangefs/internal/httprange"
	"github.com/yourname/rangefs/internal/models"
)

type (
	// Service объединяет операции по поиску файла и чтению его диапазонов.
	Service interface {
		Open(ctx context.Context, name string) (*Handle, error)
		ReadSpan(ctx context.Context, h *Handle, r httprange.ByteRange) ([]byte, error)
		ReadAll(ctx context.Context, h *Handle) ([]byte, error)
	}
)

type Deps struct {
	// Root задаёт каталог, относительно которого разрешаются пути запросов.
	Root string
}

type Files struct {
	Deps
}

// New конструирует файловый сервис с заданными зависимостями.
func New(deps Deps) *Files {
	return &Files{Deps: deps}
}

var _ Service = (*Files)(nil)

// resolvePath переводит путь запроса в путь на диске.
// Пустой путь и выход за пределы Root запрещены.
func (s *Files) resolvePath(name string) (string, error) {
	name = strings.TrimPrefix(name, "/")
	if name == "" {
		return "", fmt.Errorf("%w: empty path", models.ErrForbidden)
	}

	for _, seg := range strings.Split(name, "/") {
		if seg == ".." {
			return "", fmt.Errorf("%w: %q escapes root", models.ErrForbidden, name)
		}
	}

	return filepath.Join(s.Root, filepath.FromSlash(name)), nil
}
