package rangehttp

import (
	"net/http"
	"strconv"

	"github.com/yourname/rangefs/internal/httprange"
	"github.com/yourname/rangefs/pkg/httperrors"
	"github.com/yourname/rangefs/pkg/rangeproto"
)

type outcomeKind int

const (
	outcomeInfo outcomeKind = iota
	outcomeFull
	outcomePartial
	outcomeNotSatisfiable
	outcomeError
)

// outcome описывает единственный результат обработки запроса и определяет статус и заголовки ответа.
type outcome struct {
	kind  outcomeKind
	body  []byte
	rng   httprange.ByteRange
	total int64
	err   error
}

func info(total int64) outcome {
	return outcome{kind: outcomeInfo, total: total}
}

func full(body []byte, total int64) outcome {
	return outcome{kind: outcomeFull, body: body, total: total}
}

func partial(body []byte, rng httprange.ByteRange, total int64) outcome {
	return outcome{kind: outcomePartial, body: body, rng: rng, total: total}
}

// notSatisfiable несёт причину отказа: ErrMalformedRange или ErrUnsatisfiable.
func notSatisfiable(total int64, err error) outcome {
	return outcome{kind: outcomeNotSatisfiable, total: total, err: err}
}

func failed(err error) outcome {
	return outcome{kind: outcomeError, err: err}
}

func (o outcome) status() int {
	switch o.kind {
	case outcomeInfo, outcomeFull:
		return http.StatusOK
	case outcomePartial:
		return http.StatusPartialContent
	default:
		return httperrors.Status(o.err)
	}
}

func (o outcome) write(w http.ResponseWriter) {
	h := w.Header()

	switch o.kind {
	case outcomeInfo:
		h.Set(rangeproto.HeaderAcceptRanges, rangeproto.AcceptRangesBytes)
		h.Set("Content-Length", strconv.FormatInt(o.total, 10))
		w.WriteHeader(o.status())

	case outcomeFull, outcomePartial:
		h.Set(rangeproto.HeaderAcceptRanges, rangeproto.AcceptRangesBytes)
		if o.kind == outcomePartial {
			h.Set(rangeproto.HeaderContentRange, o.rng.ContentRange(o.total))
		}
		h.Set("Content-Type", rangeproto.ContentTypeFile)
		h.Set("Content-Length", strconv.Itoa(len(o.body)))
		w.WriteHeader(o.status())
		_, _ = w.Write(o.body)

	case outcomeNotSatisfiable:
		h.Set(rangeproto.HeaderAcceptRanges, rangeproto.AcceptRangesBytes)
		h.Set(rangeproto.HeaderContentRange, httprange.UnsatisfiedContentRange(o.total))
		w.WriteHeader(o.status())

	default:
		httperrors.Write(w, o.err)
	}
}
