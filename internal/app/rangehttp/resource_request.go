package rangehttp

import (
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/yourname/rangefs/internal/usecase/filesvc"
)

// requireResource открывает файл по пути запроса; при ошибке ответ уже записан.
func (a *Server) requireResource(w http.ResponseWriter, r *http.Request) (*filesvc.Handle, bool) {
	h, err := a.files.Open(r.Context(), r.URL.Path)
	if err != nil {
		a.respond(w, r, failed(err))
		return nil, false
	}

	return h, true
}

// respond записывает результат и логирует ошибки по их тяжести.
func (a *Server) respond(w http.ResponseWriter, r *http.Request, o outcome) {
	if o.err != nil {
		status := o.status()
		entry := a.log.WithFields(log.Fields{
			"req_id": RequestIDFrom(r.Context()),
			"path":   r.URL.Path,
			"status": status,
		}).WithError(o.err)
		if status >= http.StatusInternalServerError {
			entry.Error("request failed")
		} else {
			entry.Debug("request rejected")
		}
	}

	o.write(w)
}
