// Package bridge wraps the huego client with the operations the panel
// needs: discovery, pairing, catalog loads and rate-limited writes. All
// protocol work is huego's; this package owns sessions, caching and the
// mapping into view records.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/amimof/huego"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/clockworks/huepanel/internal/config"
	"github.com/clockworks/huepanel/internal/store"
)

// ErrNotPaired is returned by operations that need a paired bridge.
var ErrNotPaired = errors.New("not paired with a bridge")

// ErrLinkButtonNotPressed maps the bridge's API error 101: pairing was
// attempted before the physical link button was pressed.
var ErrLinkButtonNotPressed = errors.New("link button not pressed")

// ErrNoBridgeFound is returned when discovery yields nothing.
var ErrNoBridgeFound = errors.New("no bridge found")

// linkButtonErrorType is the Hue API error for CreateUser without the link
// button pressed.
const linkButtonErrorType = 101

// Session holds the pairing state and the live huego handle. Pairing
// survives restarts through the store; config values override it.
type Session struct {
	cfg *config.Config
	st  *store.Store

	mu      sync.RWMutex
	address string
	user    string
	bridge  *huego.Bridge
}

// NewSession creates a session and restores any persisted pairing. Config
// hue.bridge/hue.username take precedence over the store.
func NewSession(cfg *config.Config, st *store.Store) (*Session, error) {
	s := &Session{cfg: cfg, st: st}

	if cfg.Hue.Bridge != "" && cfg.Hue.Username != "" {
		s.address = cfg.Hue.Bridge
		s.user = cfg.Hue.Username
		s.bridge = huego.New(s.address, s.user)
		log.Info().Str("bridge", s.address).Msg("Using bridge pairing from config")
		return s, nil
	}

	pairing, err := st.LoadPairing()
	if err != nil {
		return nil, fmt.Errorf("failed to load pairing: %w", err)
	}
	if pairing != nil {
		s.address = pairing.Bridge
		s.user = pairing.Username
		s.bridge = huego.New(s.address, s.user)
		log.Info().Str("bridge", s.address).Time("paired_at", pairing.PairedAt).Msg("Restored bridge pairing")
		return s, nil
	}

	if cfg.Hue.Bridge != "" {
		// Bridge known but not yet paired; discovery can be skipped.
		s.address = cfg.Hue.Bridge
		return s, nil
	}

	// Unpaired with nothing in config: resume from the last discovery run,
	// so pairing can be retried without rescanning the network.
	discovery, err := st.LoadDiscovery()
	if err != nil {
		return nil, fmt.Errorf("failed to load discovery: %w", err)
	}
	if discovery != nil && len(discovery.Addresses) > 0 {
		s.address = discovery.Addresses[0]
		log.Info().Str("bridge", s.address).Time("found_at", discovery.FoundAt).Msg("Restored discovered bridge address")
	}

	return s, nil
}

// Paired reports whether the session has a usable bridge handle.
func (s *Session) Paired() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bridge != nil
}

// Address returns the bridge address, paired or merely discovered.
func (s *Session) Address() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.address
}

// Username returns the paired username, empty when unpaired.
func (s *Session) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Bridge returns the huego handle, or nil when unpaired.
func (s *Session) Bridge() *huego.Bridge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bridge
}

// Discover finds a bridge on the network via the cloud discovery endpoint.
// The first bridge wins, as the applet always did; the full result is
// persisted for inspection. The found address is remembered for Pair.
func (s *Session) Discover(ctx context.Context) (string, error) {
	bridges, err := huego.DiscoverAllContext(ctx)
	if err != nil {
		return "", fmt.Errorf("bridge discovery failed: %w", err)
	}
	if len(bridges) == 0 {
		return "", ErrNoBridgeFound
	}

	addresses := make([]string, 0, len(bridges))
	for _, b := range bridges {
		addresses = append(addresses, b.Host)
	}
	if err := s.st.SaveDiscovery(store.Discovery{Addresses: addresses, FoundAt: time.Now().UTC()}); err != nil {
		log.Warn().Err(err).Msg("Failed to persist discovery result")
	}

	log.Info().Strs("addresses", addresses).Msg("Bridge discovery finished")

	s.mu.Lock()
	s.address = bridges[0].Host
	s.mu.Unlock()

	return bridges[0].Host, nil
}

// Pair registers a new user on the discovered bridge. The link button must
// have been pressed; otherwise ErrLinkButtonNotPressed is returned and the
// caller may retry. On success the pairing is persisted.
func (s *Session) Pair(ctx context.Context) (string, error) {
	s.mu.RLock()
	address := s.address
	s.mu.RUnlock()

	if address == "" {
		return "", ErrNoBridgeFound
	}

	deviceType := fmt.Sprintf("huepanel#%s", uuid.NewString()[:8])
	user, err := huego.New(address, "").CreateUserContext(ctx, deviceType)
	if err != nil {
		var apiErr *huego.APIError
		if errors.As(err, &apiErr) && apiErr.Type == linkButtonErrorType {
			return "", ErrLinkButtonNotPressed
		}
		return "", fmt.Errorf("pairing failed: %w", err)
	}

	s.mu.Lock()
	s.user = user
	s.bridge = huego.New(address, user)
	s.mu.Unlock()

	if err := s.st.SavePairing(store.Pairing{
		Bridge:   address,
		Username: user,
		PairedAt: time.Now().UTC(),
	}); err != nil {
		return "", fmt.Errorf("failed to persist pairing: %w", err)
	}

	log.Info().Str("bridge", address).Str("device_type", deviceType).Msg("Paired with bridge")
	return user, nil
}

// Unpair forgets the stored pairing and drops the bridge handle. The
// username is not revoked on the bridge; the Hue API offers no way to do
// that without another user.
func (s *Session) Unpair() error {
	s.mu.Lock()
	s.bridge = nil
	s.user = ""
	s.address = ""
	s.mu.Unlock()

	if err := s.st.ClearPairing(); err != nil {
		return fmt.Errorf("failed to clear pairing: %w", err)
	}

	log.Info().Msg("Unpaired from bridge")
	return nil
}
