// Package bridge forwards MQTT messages into server channels.
//
// Each message received on a subscribed topic is published to the channel
// derived from its topic: the configured prefix is stripped and the
// remaining topic levels are joined with ":". For example, with prefix
// "sensors/" a message on "sensors/kitchen/temp" goes to "kitchen:temp".
//
// Payloads that are valid JSON are published as-is; other UTF-8 text is
// published as a JSON string. Anything else is dropped with an error log.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/lubluniky/cent-client-go/internal/config"
)

const (
	connectTimeout    = 10 * time.Second
	subscribeTimeout  = 5 * time.Second
	disconnectQuiesce = 250 // milliseconds
)

var (
	// ErrNoTopics is returned by Run when no topics are configured.
	ErrNoTopics = errors.New("bridge: no topics configured")

	// ErrConnectionFailed is returned when the broker connection fails.
	ErrConnectionFailed = errors.New("bridge: connection failed")

	// ErrSubscribeFailed is returned when a topic subscription fails.
	ErrSubscribeFailed = errors.New("bridge: subscribe failed")

	// ErrEmptyChannel is returned when a topic maps to an empty channel name.
	ErrEmptyChannel = errors.New("bridge: topic maps to empty channel")

	// ErrInvalidPayload is returned for a payload that is neither JSON nor
	// valid UTF-8 text.
	ErrInvalidPayload = errors.New("bridge: payload is neither JSON nor UTF-8")
)

// Publisher publishes data into a channel. *client.Client implements it.
type Publisher interface {
	Publish(ctx context.Context, channel string, data any, client string) (json.RawMessage, error)
}

// Bridge subscribes to MQTT topics and republishes each message.
type Bridge struct {
	cfg    config.BridgeConfig
	pub    Publisher
	logger *slog.Logger

	// ctx is the context Run was called with; message handlers publish
	// under it.
	ctx context.Context
}

// New creates a Bridge. A nil logger discards log output.
func New(cfg config.BridgeConfig, pub Publisher, logger *slog.Logger) *Bridge {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.ClientID == "" {
		cfg.ClientID = "centcli-" + uuid.NewString()
	}
	return &Bridge{cfg: cfg, pub: pub, logger: logger}
}

// ClientID returns the MQTT client identifier the bridge connects with.
func (b *Bridge) ClientID() string {
	return b.cfg.ClientID
}

// ChannelFor maps an MQTT topic to a channel name.
func (b *Bridge) ChannelFor(topic string) string {
	name := strings.TrimPrefix(topic, b.cfg.TopicPrefix)
	name = strings.Trim(name, "/")
	return strings.ReplaceAll(name, "/", ":")
}

// HandleMessage publishes payload to the channel derived from topic.
// Payloads that are neither JSON nor valid UTF-8 are rejected with
// ErrInvalidPayload, since encoding them as a JSON string would replace the
// invalid bytes.
func (b *Bridge) HandleMessage(ctx context.Context, topic string, payload []byte) error {
	channel := b.ChannelFor(topic)
	if channel == "" {
		return fmt.Errorf("%w: %q", ErrEmptyChannel, topic)
	}

	var data any
	switch {
	case json.Valid(payload):
		data = json.RawMessage(payload)
	case utf8.Valid(payload):
		data = string(payload)
	default:
		return fmt.Errorf("%w: %s", ErrInvalidPayload, topic)
	}

	if _, err := b.pub.Publish(ctx, channel, data, ""); err != nil {
		return fmt.Errorf("bridge: publishing %s to %s: %w", topic, channel, err)
	}
	b.logger.Debug("forwarded message", "topic", topic, "channel", channel, "bytes", len(payload))
	return nil
}

// Run connects to the broker, subscribes to the configured topics and
// forwards messages until ctx is cancelled. Subscriptions are restored on
// every reconnect; only a failure of the first round is returned.
func (b *Bridge) Run(ctx context.Context) error {
	if len(b.cfg.Topics) == 0 {
		return ErrNoTopics
	}

	b.ctx = ctx
	subscribed := make(chan error, 1)
	client := pahomqtt.NewClient(b.clientOptions(subscribed))
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return fmt.Errorf("%w: timeout after %v", ErrConnectionFailed, connectTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}
	defer client.Disconnect(disconnectQuiesce)

	select {
	case err := <-subscribed:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		return nil
	}

	<-ctx.Done()
	return nil
}

// clientOptions builds the paho options. The on-connect handler subscribes
// to every topic and offers the result on subscribed without blocking.
func (b *Bridge) clientOptions(subscribed chan<- error) *pahomqtt.ClientOptions {
	opts := pahomqtt.NewClientOptions().
		AddBroker(b.cfg.Broker).
		SetClientID(b.cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(connectTimeout).
		SetOrderMatters(false)
	if b.cfg.Username != "" {
		opts.SetUsername(b.cfg.Username)
		opts.SetPassword(b.cfg.Password)
	}
	opts.SetConnectionLostHandler(func(_ pahomqtt.Client, err error) {
		b.logger.Warn("mqtt connection lost", "error", err)
	})
	opts.SetOnConnectHandler(func(c pahomqtt.Client) {
		err := b.subscribe(c)
		if err != nil {
			b.logger.Error("subscribing after connect failed", "error", err)
		}
		select {
		case subscribed <- err:
		default:
		}
	})
	return opts
}

// subscribe subscribes c to all configured topics. Every topic is tried;
// the failures are joined.
func (b *Bridge) subscribe(c pahomqtt.Client) error {
	var errs []error
	for _, topic := range b.cfg.Topics {
		token := c.Subscribe(topic, byte(b.cfg.QoS), b.onMessage)
		if !token.WaitTimeout(subscribeTimeout) {
			errs = append(errs, fmt.Errorf("%w: %s: timeout after %v", ErrSubscribeFailed, topic, subscribeTimeout))
			continue
		}
		if err := token.Error(); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s: %w", ErrSubscribeFailed, topic, err))
			continue
		}
		b.logger.Info("subscribed", "topic", topic)
	}
	return errors.Join(errs...)
}

func (b *Bridge) onMessage(_ pahomqtt.Client, msg pahomqtt.Message) {
	ctx := b.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	if err := b.HandleMessage(ctx, msg.Topic(), msg.Payload()); err != nil {
		b.logger.Error("forwarding message failed", "topic", msg.Topic(), "error", err)
	}
}
