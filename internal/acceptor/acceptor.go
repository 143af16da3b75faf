// Package acceptor владеет слушающим сокетом файлового сервера: принимает соединения,
// отдаёт каждое в отдельную горутину HTTP-обработчика и между итерациями accept
// проверяет флаг остановки.
package acceptor

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
)

const DefaultPollInterval = 100 * time.Millisecond

var (
	errShutdown = errors.New("acceptor: shutdown requested")
	// ErrNoSignals возвращается, если Serve получил Signals без флагов; используйте NewSignals.
	ErrNoSignals = errors.New("acceptor: ready and shutdown flags are required")
)

// Signals содержит флаги, общие с кодом, который запускает и останавливает сервер.
// Ready выставляется один раз сразу после bind; Shutdown читается между accept'ами.
type Signals struct {
	Ready    *atomic.Bool
	Shutdown *atomic.Bool
}

// NewSignals создаёт пару сброшенных флагов.
func NewSignals() Signals {
	return Signals{Ready: new(atomic.Bool), Shutdown: new(atomic.Bool)}
}

// Acceptor принимает соединения и обслуживает их Handler'ом.
type Acceptor struct {
	Handler http.Handler
	Log     *log.Entry
	// PollInterval ограничивает время одного ожидания accept, после которого снова проверяется Shutdown.
	PollInterval time.Duration

	addr net.Addr
}

// New создаёт acceptor с интервалом опроса по умолчанию.
func New(h http.Handler, logger *log.Entry) *Acceptor {
	return &Acceptor{
		Handler:      h,
		Log:          logger,
		PollInterval: DefaultPollInterval,
	}
}

// Addr возвращает фактический адрес сокета; валиден после того, как выставлен Ready.
func (a *Acceptor) Addr() net.Addr {
	return a.addr
}

// Serve биндит addr, выставляет sig.Ready и обслуживает соединения, пока не увидит sig.Shutdown.
// Оба флага sig обязательны (см. NewSignals). Ошибка bind возвращается до выставления Ready.
// Начатые запросы дорабатывают до конца.
func (a *Acceptor) Serve(addr string, sig Signals) error {
	if sig.Ready == nil || sig.Shutdown == nil {
		return ErrNoSignals
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("bind %s: %w", addr, err)
	}

	tcp, ok := ln.(*net.TCPListener)
	if !ok {
		_ = ln.Close()
		return fmt.Errorf("bind %s: not a TCP listener", addr)
	}

	a.addr = ln.Addr()
	sig.Ready.Store(true)
	logger := a.Log.WithField("addr", a.addr.String())
	logger.Info("started listening")

	errLog := a.Log.WriterLevel(log.ErrorLevel)
	defer errLog.Close()

	srv := &http.Server{
		Handler:  a.Handler,
		ErrorLog: stdlog.New(errLog, "", 0),
	}

	err = srv.Serve(&shutdownListener{
		TCPListener: tcp,
		shutdown:    sig.Shutdown,
		poll:        a.pollInterval(),
		log:         a.Log,
	})
	if !errors.Is(err, errShutdown) {
		return err
	}

	logger.Info("shutdown requested, waiting for in-flight requests")
	if err := srv.Shutdown(context.Background()); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("stopped")

	return nil
}

func (a *Acceptor) pollInterval() time.Duration {
	if a.PollInterval <= 0 {
		return DefaultPollInterval
	}
	return a.PollInterval
}
