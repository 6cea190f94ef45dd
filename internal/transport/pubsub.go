package transport

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"net"
	"sync"
	"time"
)

// Defaults matching the original local viewer channel.
const (
	DefaultAddr  = "127.0.0.1:8079"
	DefaultTopic = "0"
)

const (
	writeTimeout  = 5 * time.Second
	maxFrameBytes = 8 << 20
)

// Publisher binds a local TCP address and broadcasts topic-prefixed JSON
// lines to every connected subscriber. Slow or dead subscribers are
// dropped, never waited on.
type Publisher struct {
	ln    net.Listener
	topic []byte

	mu       sync.Mutex
	subs     map[net.Conn]struct{}
	greeting []byte
	closed   bool
}

// Listen starts a publisher on addr. An empty topic selects DefaultTopic.
func Listen(addr, topic string) (*Publisher, error) {
	if topic == "" {
		topic = DefaultTopic
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	p := &Publisher{
		ln:    ln,
		topic: []byte(topic + " "),
		subs:  make(map[net.Conn]struct{}),
	}
	go p.accept()
	return p, nil
}

func (p *Publisher) accept() {
	for {
		conn, err := p.ln.Accept()
		if err != nil {
			return
		}
		p.mu.Lock()
		if p.closed {
			p.mu.Unlock()
			conn.Close()
			return
		}
		if p.greeting != nil {
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if _, err := conn.Write(p.greeting); err != nil {
				p.mu.Unlock()
				conn.Close()
				continue
			}
		}
		p.subs[conn] = struct{}{}
		p.mu.Unlock()
	}
}

// SetGreeting installs a message delivered to every subscriber at connect
// time, before any broadcast frames. Subscribers that dial after the
// stream has started still see the init message first.
func (p *Publisher) SetGreeting(msg any) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.greeting = p.frame(body)
	p.mu.Unlock()
	return nil
}

func (p *Publisher) frame(body []byte) []byte {
	f := make([]byte, 0, len(p.topic)+len(body)+1)
	f = append(f, p.topic...)
	f = append(f, body...)
	f = append(f, '\n')
	return f
}

// Addr returns the bound address.
func (p *Publisher) Addr() net.Addr { return p.ln.Addr() }

// Publish broadcasts one message to all current subscribers.
func (p *Publisher) Publish(msg any) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	frame := p.frame(body)

	p.mu.Lock()
	defer p.mu.Unlock()
	for conn := range p.subs {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if _, err := conn.Write(frame); err != nil {
			conn.Close()
			delete(p.subs, conn)
		}
	}
	return nil
}

// SubscriberCount returns the number of connected subscribers.
func (p *Publisher) SubscriberCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.subs)
}

// Close stops accepting and disconnects every subscriber.
func (p *Publisher) Close() error {
	p.mu.Lock()
	p.closed = true
	for conn := range p.subs {
		conn.Close()
		delete(p.subs, conn)
	}
	p.mu.Unlock()
	return p.ln.Close()
}

// Subscriber connects to a publisher and decodes matching-topic messages.
type Subscriber struct {
	conn  net.Conn
	sc    *bufio.Scanner
	topic []byte
}

// Dial connects to a publisher at addr. An empty topic selects
// DefaultTopic.
func Dial(addr, topic string) (*Subscriber, error) {
	if topic == "" {
		topic = DefaultTopic
	}
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	sc := bufio.NewScanner(conn)
	sc.Buffer(make([]byte, 0, 64<<10), maxFrameBytes)
	return &Subscriber{conn: conn, sc: sc, topic: []byte(topic + " ")}, nil
}

// Next blocks for the next message on the subscribed topic and returns
// *InitMessage or *DataMessage. It returns io.EOF when the publisher goes
// away.
func (s *Subscriber) Next() (any, error) {
	for s.sc.Scan() {
		line := s.sc.Bytes()
		if !bytes.HasPrefix(line, s.topic) {
			continue
		}
		return Decode(line[len(s.topic):])
	}
	if err := s.sc.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

// Close disconnects from the publisher.
func (s *Subscriber) Close() error { return s.conn.Close() }
