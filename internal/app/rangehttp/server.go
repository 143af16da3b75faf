package rangehttp

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"
	"github.com/yourname/rangefs/internal/usecase/filesvc"
)

// Server отдаёт файлы из filesvc.Service с поддержкой диапазонов.
type Server struct {
	files filesvc.Service
	log   log.FieldLogger
}

// New создаёт HTTP-обработчик файлового сервера.
func New(files filesvc.Service, logger log.FieldLogger) http.Handler {
	srv := &Server{
		files: files,
		log:   logger,
	}

	return srv.routes()
}

// routes регистрирует обработчики HEAD/GET; всё прочее отвечает 404.
func (a *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(a.accessLog)
	r.Use(middleware.Recoverer)

	r.Head("/*", a.info)
	r.Get("/*", a.send)

	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	return r
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNotFound)
}
