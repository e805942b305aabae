// Package transport carries image messages between named topics.
package transport

import (
	"context"

	"github.com/bluenviron/goroslib/v2/pkg/msgs/sensor_msgs"
)

type Options struct {
	NodeName      string
	Anonymous     bool
	MasterAddress string
	Host          string
	QueueSize     int
	// TestcardTopic and TestcardFPS only apply to the mock transport, which
	// publishes generated frames onto the topic when the rate is non zero.
	TestcardTopic string
	TestcardFPS   int
}

type Handler func(*sensor_msgs.Image)

type Subscription interface {
	Topic() string
	Close() error
}

type Publisher interface {
	Topic() string
	Publish(*sensor_msgs.Image) error
	Close() error
}

type Conn interface {
	Name() string
	Subscribe(topic string, h Handler) (Subscription, error)
	Publisher(topic string) (Publisher, error)
	Close() error
}

type Transport interface {
	Connect(context.Context, Options) (Conn, error)
}

func Default() Transport {
	return ROS()
}

func ROS() Transport {
	return &rosTransport{}
}

// Mock returns an in-process transport. Every connection made from the same
// mock shares one topic space.
func Mock() Transport {
	return &mockTransport{bus: newMemoryBus()}
}

func Resolve(t string) Transport {
	switch t {
	case "mock":
		return Mock()
	default:
		return Default()
	}
}
