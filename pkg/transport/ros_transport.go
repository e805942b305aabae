package transport

import (
	"context"
	"sync"

	"github.com/bluenviron/goroslib/v2"
	"github.com/bluenviron/goroslib/v2/pkg/msgs/sensor_msgs"
	"github.com/tauraamui/graydaemon/pkg/log"
	"github.com/tauraamui/xerror"
)

type rosTransport struct{}

func (t *rosTransport) Connect(cancel context.Context, opts Options) (Conn, error) {
	conn := rosConnection{queueSize: opts.QueueSize}
	if err := conn.connect(cancel, opts); err != nil {
		return nil, err
	}
	return &conn, nil
}

type rosConnection struct {
	mu        sync.Mutex
	name      string
	queueSize int
	node      *goroslib.Node
}

type openNodeResult struct {
	node *goroslib.Node
	err  error
}

func (c *rosConnection) connect(cancel context.Context, opts Options) error {
	c.name = nodeName(opts)
	nodeAndError := make(chan openNodeResult, 1)
	open := openNode
	go func(conf goroslib.NodeConf) {
		node, err := open(conf)
		nodeAndError <- openNodeResult{node: node, err: err}
	}(goroslib.NodeConf{
		Name:          c.name,
		MasterAddress: opts.MasterAddress,
		Host:          opts.Host,
	})

	select {
	case r := <-nodeAndError:
		if r.err != nil {
			return xerror.Errorf("unable to register node [%s] with master %s: %w", c.name, opts.MasterAddress, r.err)
		}
		c.node = r.node
		return nil
	case <-cancel.Done():
		// the node may still come up after we give up on it
		go func() {
			if r := <-nodeAndError; r.node != nil {
				r.node.Close()
			}
		}()
		return xerror.New("connection cancelled")
	}
}

var openNode = func(conf goroslib.NodeConf) (*goroslib.Node, error) {
	return goroslib.NewNode(conf)
}

func (c *rosConnection) Name() string { return c.name }

func (c *rosConnection) Subscribe(topic string, h Handler) (Subscription, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.node == nil {
		return nil, xerror.New("node is closed")
	}

	sub, err := goroslib.NewSubscriber(goroslib.SubscriberConf{
		Node:      c.node,
		Topic:     topic,
		QueueSize: uint(c.queueSize),
		Callback: func(msg *sensor_msgs.Image) {
			h(msg)
		},
	})
	if err != nil {
		return nil, xerror.Errorf("unable to subscribe to [%s]: %w", topic, err)
	}
	log.Debug("Subscribed to topic [%s]", topic)
	return &rosSubscription{topic: topic, sub: sub}, nil
}

func (c *rosConnection) Publisher(topic string) (Publisher, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.node == nil {
		return nil, xerror.New("node is closed")
	}

	pub, err := goroslib.NewPublisher(goroslib.PublisherConf{
		Node:  c.node,
		Topic: topic,
		Msg:   &sensor_msgs.Image{},
	})
	if err != nil {
		return nil, xerror.Errorf("unable to publish to [%s]: %w", topic, err)
	}
	log.Debug("Advertised topic [%s]", topic)
	return &rosPublisher{topic: topic, pub: pub}, nil
}

func (c *rosConnection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.node != nil {
		c.node.Close()
		c.node = nil
	}
	return nil
}

type rosSubscription struct {
	topic string
	sub   *goroslib.Subscriber
}

func (s *rosSubscription) Topic() string { return s.topic }

func (s *rosSubscription) Close() error {
	s.sub.Close()
	return nil
}

type rosPublisher struct {
	topic string
	pub   *goroslib.Publisher
}

func (p *rosPublisher) Topic() string { return p.topic }

func (p *rosPublisher) Publish(msg *sensor_msgs.Image) error {
	p.pub.Write(msg)
	return nil
}

func (p *rosPublisher) Close() error {
	p.pub.Close()
	return nil
}
