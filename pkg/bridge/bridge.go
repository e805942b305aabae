// Package bridge subscribes the grayscale upscaler to a color image topic
// and republishes what it produces.
package bridge

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bluenviron/goroslib/v2/pkg/msgs/sensor_msgs"
	"github.com/tauraamui/graydaemon/pkg/bridge/process"
	"github.com/tauraamui/graydaemon/pkg/configdef"
	"github.com/tauraamui/graydaemon/pkg/convert"
	"github.com/tauraamui/graydaemon/pkg/convert/convbackend"
	"github.com/tauraamui/graydaemon/pkg/log"
	"github.com/tauraamui/graydaemon/pkg/transport"
	"github.com/tauraamui/xerror"
)

var statsInterval = 30 * time.Second

type Stats struct {
	Converted uint64
	Failed    uint64
}

type Bridge struct {
	config    configdef.Values
	transport transport.Transport
	upscaler  convert.Upscaler
	mu        sync.Mutex
	conn      transport.Conn
	pub       transport.Publisher
	proc      process.Process
	converted atomic.Uint64
	failed    atomic.Uint64
}

func New(resolver configdef.Resolver, tr transport.Transport, backend convbackend.Backend) (*Bridge, error) {
	values, err := resolver.Resolve()
	if err != nil {
		return nil, xerror.Errorf("unable to load configuration: %w", err)
	}

	log.Info("Converting frames with [%s] backend", backend.Name())
	return &Bridge{
		config:    values,
		transport: tr,
		upscaler:  convert.NewUpscaler(backend, convert.Options{PropagateHeader: values.PropagateHeader}),
	}, nil
}

func (b *Bridge) Connect() error {
	return b.connect(context.Background())
}

func (b *Bridge) ConnectWithCancel(cancel context.Context) error {
	return b.connect(cancel)
}

func (b *Bridge) connect(cancel context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	log.Info("Connecting node [%s] to %s...", b.config.NodeName, b.config.MasterAddress)
	conn, err := b.transport.Connect(cancel, transport.Options{
		NodeName:      b.config.NodeName,
		Anonymous:     b.config.Anonymous,
		MasterAddress: b.config.MasterAddress,
		Host:          b.config.Host,
		QueueSize:     b.config.QueueSize,
		TestcardTopic: b.config.InputTopic,
		TestcardFPS:   b.config.TestcardFPS,
	})
	if err != nil {
		return err
	}

	pub, err := conn.Publisher(b.config.OutputTopic)
	if err != nil {
		conn.Close()
		return err
	}

	log.Info("Connected as node [%s]", conn.Name())
	b.conn, b.pub = conn, pub
	return nil
}

// Run subscribes the upscaler to the input topic. Frames are converted on
// whichever goroutine the transport delivers them on.
func (b *Bridge) Run() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.conn == nil {
		return xerror.New("bridge is not connected")
	}
	if b.proc != nil {
		return xerror.New("bridge is already running")
	}

	sub, err := b.conn.Subscribe(b.config.InputTopic, b.handler(b.pub))
	if err != nil {
		return err
	}
	log.Info("Converting frames from [%s] to [%s]", b.config.InputTopic, b.config.OutputTopic)

	b.proc = process.New(process.Settings{
		WaitForShutdownMsg: fmt.Sprintf("Unsubscribing from [%s]...", b.config.InputTopic),
		Process:            convertProcess(sub, b.logStats),
	})
	b.proc.Setup().Start()
	return nil
}

func convertProcess(sub transport.Subscription, report func()) func(context.Context) []chan interface{} {
	return func(ctx context.Context) []chan interface{} {
		subscribed := make(chan interface{})
		reporting := make(chan interface{})

		go func() {
			defer close(subscribed)
			<-ctx.Done()
			if err := sub.Close(); err != nil {
				log.Error("Unable to close subscription to [%s]: %s", sub.Topic(), err.Error())
			}
		}()

		go func() {
			defer close(reporting)
			ticker := time.NewTicker(statsInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					report()
				}
			}
		}()

		return []chan interface{}{subscribed, reporting}
	}
}

// handler converts one frame and publishes the result to pub. A frame that
// fails is reported and dropped, nothing carries over to the next one.
func (b *Bridge) handler(pub transport.Publisher) transport.Handler {
	return func(msg *sensor_msgs.Image) {
		res := b.upscaler.Handle(msg)
		if !res.OK() {
			b.failed.Add(1)
			log.Error("Unable to convert frame from [%s]: %s", b.config.InputTopic, res.Err.Error())
			return
		}

		if err := pub.Publish(res.Frame); err != nil {
			b.failed.Add(1)
			log.Error("Unable to publish frame to [%s]: %s", pub.Topic(), err.Error())
			return
		}
		b.converted.Add(1)
	}
}

func (b *Bridge) Stats() Stats {
	return Stats{Converted: b.converted.Load(), Failed: b.failed.Load()}
}

func (b *Bridge) logStats() {
	s := b.Stats()
	log.Info("Frames converted: %d, failed: %d", s.Converted, s.Failed)
}

func (b *Bridge) shutdown(done chan interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.proc != nil {
		b.proc.Stop()
		b.proc.Wait()
		b.proc = nil
	}
	if b.pub != nil {
		if err := b.pub.Close(); err != nil {
			log.Error("Unable to close publisher: %s", err.Error())
		}
		b.pub = nil
	}
	if b.conn != nil {
		log.Warn("Closing node [%s]...", b.conn.Name())
		if err := b.conn.Close(); err != nil {
			log.Error("Unable to close node connection: %s", err.Error())
		}
		b.conn = nil
	}
	b.logStats()
	close(done)
}

// Shutdown stops converting, releases the transport and returns a channel
// closed once everything has been released.
func (b *Bridge) Shutdown() chan interface{} {
	done := make(chan interface{})
	go b.shutdown(done)
	return done
}
