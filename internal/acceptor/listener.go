package acceptor

import (
	"errors"
	"net"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
)

// shutdownListener проверяет флаг остановки перед каждым accept.
// Дедлайн на сокете не даёт accept заблокироваться дольше poll.
type shutdownListener struct {
	*net.TCPListener
	shutdown *atomic.Bool
	poll     time.Duration
	log      *log.Entry
}

func (l *shutdownListener) Accept() (net.Conn, error) {
	for {
		if l.shutdown.Load() {
			return nil, errShutdown
		}

		if err := l.TCPListener.SetDeadline(time.Now().Add(l.poll)); err != nil {
			return nil, err
		}

		conn, err := l.TCPListener.Accept()
		if err == nil {
			l.log.WithField("remote", conn.RemoteAddr().String()).Debug("client connected")
			return conn, nil
		}

		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			continue
		}
		if errors.Is(err, net.ErrClosed) {
			return nil, err
		}

		l.log.WithError(err).Error("couldn't accept client")
		time.Sleep(l.poll)
	}
}
