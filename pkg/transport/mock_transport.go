package transport

import (
	"context"
	"sync"
	"time"

	"github.com/bluenviron/goroslib/v2/pkg/msgs/sensor_msgs"
	"github.com/tauraamui/graydaemon/pkg/log"
	"github.com/tauraamui/xerror"
)

type memoryBus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]Handler
}

func newMemoryBus() *memoryBus {
	return &memoryBus{subs: map[string]map[int]Handler{}}
}

func (b *memoryBus) subscribe(topic string, h Handler) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	if b.subs[topic] == nil {
		b.subs[topic] = map[int]Handler{}
	}
	b.subs[topic][b.nextID] = h
	return b.nextID
}

func (b *memoryBus) unsubscribe(topic string, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs[topic], id)
}

// publish delivers msg to every current subscriber of topic on the
// calling goroutine.
func (b *memoryBus) publish(topic string, msg *sensor_msgs.Image) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs[topic]))
	for _, h := range b.subs[topic] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(msg)
	}
}

type mockTransport struct {
	bus *memoryBus
}

func (t *mockTransport) Connect(cancel context.Context, opts Options) (Conn, error) {
	select {
	case <-cancel.Done():
		return nil, xerror.New("connection cancelled")
	default:
	}

	conn := &mockConnection{name: nodeName(opts), bus: t.bus}
	if opts.TestcardFPS > 0 && len(opts.TestcardTopic) > 0 {
		if err := conn.startTestcard(opts.TestcardTopic, opts.TestcardFPS); err != nil {
			return nil, err
		}
	}
	return conn, nil
}

type mockConnection struct {
	mu       sync.Mutex
	name     string
	bus      *memoryBus
	isClosed bool
	stopCard context.CancelFunc
	cardDone chan interface{}
}

func (c *mockConnection) Name() string { return c.name }

func (c *mockConnection) Subscribe(topic string, h Handler) (Subscription, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.isClosed {
		return nil, xerror.New("mock connection is closed")
	}
	return &mockSubscription{topic: topic, bus: c.bus, id: c.bus.subscribe(topic, h)}, nil
}

func (c *mockConnection) Publisher(topic string) (Publisher, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.isClosed {
		return nil, xerror.New("mock connection is closed")
	}
	return &mockPublisher{topic: topic, bus: c.bus}, nil
}

func (c *mockConnection) startTestcard(topic string, fps int) error {
	card, err := newTestcard(c.name)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.stopCard = cancel
	c.cardDone = make(chan interface{})
	pub := &mockPublisher{topic: topic, bus: c.bus}

	go func() {
		defer close(c.cardDone)
		ticker := time.NewTicker(time.Second / time.Duration(fps))
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				log.Debug("Publishing testcard frame to [%s]", topic)
				pub.Publish(card.Frame(now)) //nolint
			}
		}
	}()
	return nil
}

func (c *mockConnection) Close() error {
	c.mu.Lock()
	c.isClosed = true
	stop, done := c.stopCard, c.cardDone
	c.stopCard = nil
	c.mu.Unlock()

	if stop != nil {
		stop()
		<-done
	}
	return nil
}

type mockSubscription struct {
	once  sync.Once
	topic string
	bus   *memoryBus
	id    int
}

func (s *mockSubscription) Topic() string { return s.topic }

func (s *mockSubscription) Close() error {
	s.once.Do(func() { s.bus.unsubscribe(s.topic, s.id) })
	return nil
}

type mockPublisher struct {
	mu       sync.Mutex
	topic    string
	bus      *memoryBus
	isClosed bool
}

func (p *mockPublisher) Topic() string { return p.topic }

func (p *mockPublisher) Publish(msg *sensor_msgs.Image) error {
	p.mu.Lock()
	closed := p.isClosed
	p.mu.Unlock()
	if closed {
		return xerror.Errorf("publisher for [%s] is closed", p.topic)
	}
	p.bus.publish(p.topic, msg)
	return nil
}

func (p *mockPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.isClosed = true
	return nil
}
