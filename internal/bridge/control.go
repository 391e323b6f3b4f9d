package bridge

import (
	"context"
	"fmt"

	"github.com/amimof/huego"
	"github.com/rs/zerolog/log"

	"github.com/clockworks/huepanel/internal/color"
)

// Writes go through the shared rate limiter so slider scrubbing cannot
// flood the bridge. Every successful write invalidates the snapshot; the
// panel keeps its own optimistic state until the next reload.

// SetLightOn switches a single light.
func (s *Service) SetLightOn(ctx context.Context, id int, on bool) error {
	return s.setLight(ctx, id, huego.State{On: on})
}

// SetLightBrightness sets light brightness (1..254). The light is switched
// on as part of the write; the bridge rejects brightness on an off light.
func (s *Service) SetLightBrightness(ctx context.Context, id int, bri uint8) error {
	return s.setLight(ctx, id, huego.State{On: true, Bri: color.ClampBri(int(bri))})
}

// SetLightColor sets light color in Hue units.
func (s *Service) SetLightColor(ctx context.Context, id int, c color.HSV) error {
	return s.setLight(ctx, id, huego.State{On: true, Hue: c.Hue, Sat: c.Sat, Bri: color.ClampBri(int(c.Bri))})
}

// SetGroupOn switches every light in a group.
func (s *Service) SetGroupOn(ctx context.Context, id int, on bool) error {
	return s.setGroup(ctx, id, huego.State{On: on})
}

// SetGroupBrightness sets brightness for a whole group.
func (s *Service) SetGroupBrightness(ctx context.Context, id int, bri uint8) error {
	return s.setGroup(ctx, id, huego.State{On: true, Bri: color.ClampBri(int(bri))})
}

// SetGroupColor sets color for a whole group.
func (s *Service) SetGroupColor(ctx context.Context, id int, c color.HSV) error {
	return s.setGroup(ctx, id, huego.State{On: true, Hue: c.Hue, Sat: c.Sat, Bri: color.ClampBri(int(c.Bri))})
}

// RecallScene applies a scene to its group. Group 0 is the bridge's
// all-lights group, used for scenes without an owner.
func (s *Service) RecallScene(ctx context.Context, sceneID string, groupID int) error {
	b := s.session.Bridge()
	if b == nil {
		return ErrNotPaired
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := b.RecallSceneContext(ctx, sceneID, groupID); err != nil {
		return fmt.Errorf("failed to recall scene: %w", err)
	}

	log.Debug().Str("scene", sceneID).Int("group", groupID).Msg("Scene recalled")
	s.Invalidate()
	return nil
}

func (s *Service) setLight(ctx context.Context, id int, state huego.State) error {
	b := s.session.Bridge()
	if b == nil {
		return ErrNotPaired
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := b.SetLightStateContext(ctx, id, state); err != nil {
		return fmt.Errorf("failed to set light %d state: %w", id, err)
	}

	log.Debug().Int("light", id).Bool("on", state.On).Uint8("bri", state.Bri).Msg("Light state set")
	s.Invalidate()
	return nil
}

func (s *Service) setGroup(ctx context.Context, id int, state huego.State) error {
	b := s.session.Bridge()
	if b == nil {
		return ErrNotPaired
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := b.SetGroupStateContext(ctx, id, state); err != nil {
		return fmt.Errorf("failed to set group %d state: %w", id, err)
	}

	log.Debug().Int("group", id).Bool("on", state.On).Uint8("bri", state.Bri).Msg("Group state set")
	s.Invalidate()
	return nil
}
