// Package rangeclient реализует HTTP-клиент файлового сервера: размер файла, файл целиком и диапазоны.
package rangeclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/pkg/errors"
	"github.com/yourname/rangefs/pkg/rangeproto"
)

// Info описывает файл по ответу на HEAD.
type Info struct {
	Size         int64
	AcceptRanges bool
	RequestID    string
}

// Response содержит тело ответа на GET и его заголовки.
type Response struct {
	Body          io.ReadCloser
	StatusCode    int
	ContentLength int64
	ContentRange  string
}

// StatusError возвращается, если сервер ответил статусом, отличным от 200/206.
type StatusError struct {
	Method string
	URL    string
	Code   int
	Status string
	// ContentRange заполнен для 416.
	ContentRange string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s - unexpected status '%s'", e.Method, e.URL, e.Status)
}

type Client interface {
	// Info запрашивает размер файла через HEAD
	Info(ctx context.Context, url string) (Info, error)
	// Get скачивает файл; пустой spec означает файл целиком
	Get(ctx context.Context, url, spec string) (*Response, error)
	// GetRange скачивает интервал [start, end] включительно
	GetRange(ctx context.Context, url string, start, end int64) (*Response, error)
}

type httpClient struct {
	c        *http.Client
	progress io.Writer
}

// New создаёт HTTP-клиент; если progress не nil, загрузки рисуют в него индикатор.
func New(progress io.Writer) Client {
	return &httpClient{
		c:        &http.Client{},
		progress: progress,
	}
}

// Info выполняет HEAD и читает Content-Length и Accept-Ranges.
func (h *httpClient) Info(ctx context.Context, url string) (Info, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return Info{}, errors.Wrapf(err, "HEAD %s - failed to create request", url)
	}

	resp, err := h.c.Do(req)
	if err != nil {
		return Info{}, errors.Wrapf(err, "HEAD %s - request failed", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Info{}, &StatusError{Method: http.MethodHead, URL: url, Code: resp.StatusCode, Status: resp.Status}
	}

	size := resp.ContentLength
	if header := resp.Header.Get("Content-Length"); size < 0 && header != "" {
		if size, err = strconv.ParseInt(header, 10, 64); err != nil {
			return Info{}, errors.Wrapf(err, "HEAD %s - bad Content-Length", url)
		}
	}

	return Info{
		Size:         size,
		AcceptRanges: resp.Header.Get(rangeproto.HeaderAcceptRanges) == rangeproto.AcceptRangesBytes,
		RequestID:    resp.Header.Get(rangeproto.HeaderRequestID),
	}, nil
}

// Get скачивает файл или его часть и возвращает поток с телом.
func (h *httpClient) Get(ctx context.Context, url, spec string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "GET %s - failed to create request", url)
	}
	if spec != "" {
		req.Header.Set(rangeproto.HeaderRange, spec)
	}

	resp, err := h.c.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "GET %s - request failed", url)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		resp.Body.Close()
		return nil, &StatusError{
			Method:       http.MethodGet,
			URL:          url,
			Code:         resp.StatusCode,
			Status:       resp.Status,
			ContentRange: resp.Header.Get(rangeproto.HeaderContentRange),
		}
	}

	body := resp.Body
	if h.progress != nil {
		label := "Downloading " + url
		if spec != "" {
			label += " [" + spec + "]"
		}
		bar := newProgressBar(h.progress, label, resp.ContentLength)
		bar.start()
		body = newProgressReadCloser(resp.Body, bar)
	}

	return &Response{
		Body:          body,
		StatusCode:    resp.StatusCode,
		ContentLength: resp.ContentLength,
		ContentRange:  resp.Header.Get(rangeproto.HeaderContentRange),
	}, nil
}

// GetRange скачивает интервал байт [start, end].
func (h *httpClient) GetRange(ctx context.Context, url string, start, end int64) (*Response, error) {
	if start > end {
		return nil, fmt.Errorf("invalid range for read request: %d-%d", start, end)
	}
	return h.Get(ctx, url, fmt.Sprintf(rangeproto.RangeFormat, start, end))
}
