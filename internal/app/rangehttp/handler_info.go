package rangehttp

import (
	"net/http"
)

// info отвечает на HEAD-запросы размером файла без тела.
func (a *Server) info(w http.ResponseWriter, r *http.Request) {
	h, ok := a.requireResource(w, r)
	if !ok {
		return
	}
	defer h.Close()

	a.respond(w, r, info(h.Size))
}
