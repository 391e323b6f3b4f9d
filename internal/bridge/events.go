package bridge

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/r3labs/sse/v2"
	"github.com/rs/zerolog/log"

	"github.com/clockworks/huepanel/internal/color"
)

// ErrMaxReconnectsExceeded is returned when the maximum number of reconnect attempts is exceeded.
var ErrMaxReconnectsExceeded = errors.New("max reconnects exceeded")

// StreamConfig contains configuration for event stream reconnection.
type StreamConfig struct {
	MinBackoff    time.Duration // Minimum backoff between reconnects
	MaxBackoff    time.Duration // Maximum backoff between reconnects
	Multiplier    float64       // Backoff multiplier
	MaxReconnects int           // Max reconnect attempts, 0 = infinite
}

// DefaultStreamConfig returns sensible defaults for event stream configuration.
func DefaultStreamConfig() StreamConfig {
	return StreamConfig{
		MinBackoff:    1 * time.Second,
		MaxBackoff:    2 * time.Minute,
		Multiplier:    2.0,
		MaxReconnects: 0, // infinite
	}
}

// LightUpdate is a state change observed on the v2 event stream, mapped
// back to the v1 light id the panel works with. Nil fields were not part
// of the event.
type LightUpdate struct {
	LightID int
	On      *bool
	Bri     *uint8
}

// Stream subscribes to the bridge's v2 SSE event stream and forwards light
// state changes, so switches and other apps show up in the panel live.
type Stream struct {
	session *Session
	config  StreamConfig
	updates chan LightUpdate
}

// NewStream creates an event stream listener.
func NewStream(session *Session, config StreamConfig) *Stream {
	return &Stream{
		session: session,
		config:  config,
		updates: make(chan LightUpdate, 32),
	}
}

// Updates returns the channel of observed light changes.
func (s *Stream) Updates() <-chan LightUpdate {
	return s.updates
}

// Run connects to the event stream and reconnects with exponential backoff
// until the context is cancelled. Returns ErrMaxReconnectsExceeded if the
// configured reconnect budget runs out.
func (s *Stream) Run(ctx context.Context) error {
	retryCount := 0
	currentBackoff := s.config.MinBackoff

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		err := s.connect(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			// Not paired yet: idle at a fixed interval until a pairing
			// appears, without spending the reconnect budget.
			if errors.Is(err, ErrNotPaired) {
				select {
				case <-ctx.Done():
					return nil
				case <-time.After(s.config.MinBackoff):
				}
				continue
			}

			retryCount++

			if s.config.MaxReconnects > 0 && retryCount > s.config.MaxReconnects {
				log.Error().
					Int("max_reconnects", s.config.MaxReconnects).
					Msg("Event stream: max reconnects exceeded, terminating")
				return ErrMaxReconnectsExceeded
			}

			log.Warn().
				Err(err).
				Dur("backoff", currentBackoff).
				Int("retry", retryCount).
				Msg("Event stream disconnected, reconnecting")

			select {
			case <-ctx.Done():
				return nil
			case <-time.After(currentBackoff):
			}

			// Calculate next backoff with multiplier, capped at max
			nextBackoff := time.Duration(float64(currentBackoff) * s.config.Multiplier)
			if nextBackoff > s.config.MaxBackoff {
				nextBackoff = s.config.MaxBackoff
			}
			currentBackoff = nextBackoff

			continue
		}

		// Reset retry count and backoff on successful connection
		retryCount = 0
		currentBackoff = s.config.MinBackoff
	}
}

func (s *Stream) connect(ctx context.Context) error {
	address := s.session.Address()
	user := s.session.Username()
	if address == "" || user == "" {
		return ErrNotPaired
	}

	client := sse.NewClient(fmt.Sprintf("https://%s/eventstream/clip/v2", address))
	client.Headers["hue-application-key"] = user
	// The bridge serves a self-signed certificate
	client.Connection.Transport = &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
	}

	log.Debug().Str("bridge", address).Msg("Connecting to event stream")

	connected := false
	return client.SubscribeRawWithContext(ctx, func(msg *sse.Event) {
		if !connected {
			connected = true
			log.Info().Str("bridge", address).Msg("Event stream connected")
		}
		if len(msg.Data) == 0 {
			return
		}
		for _, update := range parseEventData(msg.Data) {
			select {
			case s.updates <- update:
			default:
				// The panel is not draining; drop rather than block the stream
			}
		}
	})
}

// eventFrame is one entry of the v2 event stream payload.
type eventFrame struct {
	Type string `json:"type"`
	Data []struct {
		Type string `json:"type"`
		IDV1 string `json:"id_v1"`
		On   *struct {
			On bool `json:"on"`
		} `json:"on,omitempty"`
		Dimming *struct {
			Brightness float64 `json:"brightness"`
		} `json:"dimming,omitempty"`
	} `json:"data"`
}

// parseEventData extracts light updates from a raw SSE payload. The v2
// stream reports dimming in percent; the panel works in the v1 1..254
// scale.
func parseEventData(data []byte) []LightUpdate {
	var frames []eventFrame
	if err := json.Unmarshal(data, &frames); err != nil {
		log.Debug().Err(err).Msg("Failed to parse event stream payload")
		return nil
	}

	var updates []LightUpdate
	for _, frame := range frames {
		if frame.Type != "update" {
			continue
		}
		for _, d := range frame.Data {
			if d.Type != "light" {
				continue
			}
			id, ok := parseV1LightID(d.IDV1)
			if !ok {
				continue
			}

			update := LightUpdate{LightID: id}
			if d.On != nil {
				on := d.On.On
				update.On = &on
			}
			if d.Dimming != nil {
				bri := color.ClampBri(int(d.Dimming.Brightness / 100.0 * 254.0))
				update.Bri = &bri
			}
			if update.On == nil && update.Bri == nil {
				continue
			}
			updates = append(updates, update)
		}
	}
	return updates
}

// parseV1LightID extracts N from "/lights/N".
func parseV1LightID(idv1 string) (int, bool) {
	const prefix = "/lights/"
	if !strings.HasPrefix(idv1, prefix) {
		return 0, false
	}
	id, err := strconv.Atoi(idv1[len(prefix):])
	if err != nil {
		return 0, false
	}
	return id, true
}
