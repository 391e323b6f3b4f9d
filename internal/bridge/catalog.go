package bridge

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/amimof/huego"
	"github.com/jellydator/ttlcache/v3"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/clockworks/huepanel/internal/color"
	"github.com/clockworks/huepanel/internal/store"
)

const catalogKey = "current"

// Service exposes the bridge to the panel: catalog snapshots and writes.
// Snapshots are cached with a short TTL so reopening the panel does not
// refetch everything; the snapshot is also persisted so a restart within
// the TTL starts warm. Every write invalidates the snapshot.
type Service struct {
	session  *Session
	st       *store.Store
	cache    *ttlcache.Cache[string, Catalog]
	cacheTTL time.Duration
	limiter  *rate.Limiter
	timeout  time.Duration
}

// NewService creates the bridge service.
func NewService(session *Session, st *store.Store, cacheTTL time.Duration, rateLimitRPS float64, timeout time.Duration) *Service {
	if rateLimitRPS == 0 {
		rateLimitRPS = 10.0
	}
	cache := ttlcache.New(
		ttlcache.WithTTL[string, Catalog](cacheTTL),
	)
	go cache.Start()

	return &Service{
		session:  session,
		st:       st,
		cache:    cache,
		cacheTTL: cacheTTL,
		limiter:  rate.NewLimiter(rate.Limit(rateLimitRPS), int(rateLimitRPS)),
		timeout:  timeout,
	}
}

// Close stops the snapshot cache.
func (s *Service) Close() {
	s.cache.Stop()
}

// Session returns the underlying pairing session.
func (s *Service) Session() *Session {
	return s.session
}

// Catalog returns the current lights/groups/scenes snapshot. force skips
// the cache; a cached snapshot within the TTL is returned as-is otherwise.
func (s *Service) Catalog(ctx context.Context, force bool) (Catalog, error) {
	if !force {
		if item := s.cache.Get(catalogKey); item != nil {
			return item.Value(), nil
		}
		var persisted Catalog
		if ok, err := s.st.Get(store.BucketCatalog, catalogKey, &persisted); err == nil && ok {
			s.cache.Set(catalogKey, persisted, ttlcache.DefaultTTL)
			return persisted, nil
		}
	}

	catalog, err := s.load(ctx)
	if err != nil {
		return Catalog{}, err
	}

	s.cache.Set(catalogKey, catalog, ttlcache.DefaultTTL)
	if err := s.st.Put(store.BucketCatalog, catalogKey, catalog, s.cacheTTL); err != nil {
		log.Warn().Err(err).Msg("Failed to persist catalog snapshot")
	}
	return catalog, nil
}

// Invalidate drops the cached snapshot so the next Catalog call refetches.
func (s *Service) Invalidate() {
	s.cache.Delete(catalogKey)
	if _, err := s.st.Delete(store.BucketCatalog, catalogKey); err != nil {
		log.Warn().Err(err).Msg("Failed to drop persisted catalog snapshot")
	}
}

func (s *Service) load(ctx context.Context) (Catalog, error) {
	b := s.session.Bridge()
	if b == nil {
		return Catalog{}, ErrNotPaired
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	lights, err := b.GetLightsContext(ctx)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to load lights: %w", err)
	}
	groups, err := b.GetGroupsContext(ctx)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to load groups: %w", err)
	}
	scenes, err := b.GetScenesContext(ctx)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to load scenes: %w", err)
	}

	catalog := buildCatalog(lights, groups, scenes)

	log.Debug().
		Int("lights", len(catalog.Lights)).
		Int("groups", len(catalog.Groups)).
		Int("scenes", len(catalog.Scenes)).
		Msg("Catalog loaded")

	return catalog, nil
}

// buildCatalog maps huego resources into view records. Split out from load
// so the derivation rules are testable without a bridge.
func buildCatalog(lights []huego.Light, groups []huego.Group, scenes []huego.Scene) Catalog {
	c := Catalog{LoadedAt: time.Now()}

	for _, l := range lights {
		vm := Light{ID: l.ID, Name: l.Name}
		if l.State != nil {
			vm.HasState = true
			vm.On = l.State.On
			vm.Bri = l.State.Bri
			vm.Reachable = l.State.Reachable
			vm.Color = color.HSV{Hue: l.State.Hue, Sat: l.State.Sat, Bri: l.State.Bri}
		}
		c.Lights = append(c.Lights, vm)
	}

	for _, g := range groups {
		vm := Group{ID: g.ID, Name: g.Name}
		for _, idStr := range g.Lights {
			id, err := strconv.Atoi(idStr)
			if err != nil {
				continue
			}
			vm.LightIDs = append(vm.LightIDs, id)
		}
		if g.GroupState != nil {
			vm.HasState = true
			vm.On = g.GroupState.AnyOn
		}
		// Slider position and swatch come from the first member light the
		// bridge reported state for, as in the applet.
		if len(vm.LightIDs) > 0 {
			if first := c.LightByID(vm.LightIDs[0]); first != nil && first.HasState {
				vm.Bri = first.Bri
				vm.Color = first.Color
			}
		}
		c.Groups = append(c.Groups, vm)
	}

	for _, sc := range scenes {
		vm := Scene{ID: sc.ID, Name: sc.Name}
		if gid, err := strconv.Atoi(sc.Group); err == nil {
			vm.GroupID = gid
		}
		c.Scenes = append(c.Scenes, vm)
	}

	sortCatalog(&c)
	return c
}
