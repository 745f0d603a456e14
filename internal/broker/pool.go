package broker

import (
	"context"
	"errors"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// PoolConfig mirrors original_source's mq_manager Builder: fixed-size
// connection pool with wait/create/recycle timeouts all sharing one
// configured duration, since amqp091-go ships no connection pool of its
// own (unlike the pgx/redis clients used elsewhere in this module).
type PoolConfig struct {
	URL               string
	MaxConnection     int
	MinConnection     int
	ConnectionTimeout time.Duration
}

// Pool hands out *amqp.Connection values, lazily dialing up to MaxConnection
// and eagerly pre-warming MinConnection at startup.
type Pool struct {
	cfg  PoolConfig
	mu   sync.Mutex
	idle []*amqp.Connection
	size int
}

var ErrPoolExhausted = errors.New("broker: connection pool exhausted")

func NewPool(ctx context.Context, cfg PoolConfig) (*Pool, error) {
	p := &Pool{cfg: cfg}
	for i := 0; i < cfg.MinConnection; i++ {
		conn, err := p.dial()
		if err != nil {
			return nil, err
		}
		p.idle = append(p.idle, conn)
		p.size++
	}
	return p, nil
}

func (p *Pool) dial() (*amqp.Connection, error) {
	return amqp.DialConfig(p.cfg.URL, amqp.Config{
		Dial: amqp.DefaultDial(p.cfg.ConnectionTimeout),
	})
}

// Acquire returns an idle connection, dialing a new one if under the max
// and none is idle. It blocks up to ConnectionTimeout waiting for one to
// free up once the pool is saturated.
func (p *Pool) Acquire(ctx context.Context) (*amqp.Connection, error) {
	deadline := time.Now().Add(p.cfg.ConnectionTimeout)
	for {
		p.mu.Lock()
		for len(p.idle) > 0 {
			conn := p.idle[len(p.idle)-1]
			p.idle = p.idle[:len(p.idle)-1]
			if !conn.IsClosed() {
				p.mu.Unlock()
				return conn, nil
			}
			p.size--
		}
		if p.size < p.cfg.MaxConnection {
			p.size++
			p.mu.Unlock()
			conn, err := p.dial()
			if err != nil {
				p.mu.Lock()
				p.size--
				p.mu.Unlock()
				return nil, err
			}
			return conn, nil
		}
		p.mu.Unlock()

		if time.Now().After(deadline) {
			return nil, ErrPoolExhausted
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}
	}
}

// Release returns conn to the idle set, or drops it (and its pool slot) if
// it has already closed.
func (p *Pool) Release(conn *amqp.Connection) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if conn.IsClosed() {
		p.size--
		return
	}
	p.idle = append(p.idle, conn)
}

// Close tears down every idle connection. In-flight acquisitions are not
// interrupted.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var firstErr error
	for _, conn := range p.idle {
		if err := conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	p.idle = nil
	p.size = 0
	return firstErr
}
