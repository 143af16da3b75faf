package rangehttp

import (
	"net/http"

	"github.com/yourname/rangefs/internal/httprange"
	"github.com/yourname/rangefs/pkg/rangeproto"
)

// send обслуживает GET: файл целиком или первый диапазон из заголовка.
func (a *Server) send(w http.ResponseWriter, r *http.Request) {
	h, ok := a.requireResource(w, r)
	if !ok {
		return
	}
	defer h.Close()

	spec, ranged := rangeSpec(r)
	if !ranged {
		body, err := a.files.ReadAll(r.Context(), h)
		if err != nil {
			a.respond(w, r, failed(err))
			return
		}
		a.respond(w, r, full(body, h.Size))
		return
	}

	set, err := httprange.Resolve(spec, h.Size)
	if err != nil {
		a.respond(w, r, notSatisfiable(h.Size, err))
		return
	}

	// Отдаётся только первый диапазон набора, multipart/byteranges не поддерживается.
	rng, err := set.Satisfy(h.Size)
	if err != nil {
		a.respond(w, r, notSatisfiable(h.Size, err))
		return
	}

	body, err := a.files.ReadSpan(r.Context(), h, rng)
	if err != nil {
		a.respond(w, r, failed(err))
		return
	}

	a.respond(w, r, partial(body, rng, h.Size))
}

// rangeSpec возвращает спецификатор диапазона из Range, а для старых клиентов из Content-Range.
func rangeSpec(r *http.Request) (string, bool) {
	if v, ok := r.Header[rangeproto.HeaderRange]; ok && len(v) > 0 {
		return v[0], true
	}
	if v, ok := r.Header[rangeproto.HeaderContentRange]; ok && len(v) > 0 {
		return v[0], true
	}
	return "", false
}
