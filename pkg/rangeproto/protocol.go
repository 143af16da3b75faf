// Package rangeproto описывает протокол HTTP-взаимодействия файлового сервера и клиента.
package rangeproto

// Заголовки и значения протокола выдачи файлов по диапазонам.
const (
	HeaderRange        = "Range"
	HeaderContentRange = "Content-Range"
	HeaderAcceptRanges = "Accept-Ranges"
	HeaderRequestID    = "X-Request-Id"

	AcceptRangesBytes = "bytes"
	RangeFormat       = "bytes=%d-%d"

	// ContentTypeFile отдаётся на все тела GET без определения MIME.
	ContentTypeFile = "text/html; charset=utf-8"
)
