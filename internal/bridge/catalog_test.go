package bridge

import (
	"context"
	"testing"
	"time"

	"github.com/amimof/huego"

	"github.com/clockworks/huepanel/internal/store"
)

func state(on bool, bri uint8, hue uint16, sat uint8) *huego.State {
	return &huego.State{On: on, Bri: bri, Hue: hue, Sat: sat, Reachable: true}
}

func TestBuildCatalog_Sorting(t *testing.T) {
	lights := []huego.Light{
		{ID: 1, Name: "zeta", State: state(true, 100, 0, 0)},
		{ID: 2, Name: "Alpha", State: state(false, 50, 0, 0)},
		{ID: 3, Name: "beta", State: state(true, 200, 0, 0)},
	}

	c := buildCatalog(lights, nil, nil)

	want := []string{"Alpha", "beta", "zeta"}
	if len(c.Lights) != 3 {
		t.Fatalf("got %d lights", len(c.Lights))
	}
	for i, name := range want {
		if c.Lights[i].Name != name {
			t.Errorf("lights[%d] = %q, want %q (case-insensitive order)", i, c.Lights[i].Name, name)
		}
	}
}

func TestBuildCatalog_LightState(t *testing.T) {
	lights := []huego.Light{
		{ID: 7, Name: "Desk", State: state(true, 180, 12000, 200)},
		{ID: 8, Name: "Broken"}, // no state reported
	}

	c := buildCatalog(lights, nil, nil)

	desk := c.LightByID(7)
	if desk == nil {
		t.Fatal("light 7 missing")
	}
	if !desk.HasState || !desk.On || desk.Bri != 180 {
		t.Errorf("desk = %+v", desk)
	}
	if desk.Color.Hue != 12000 || desk.Color.Sat != 200 || desk.Color.Bri != 180 {
		t.Errorf("desk color = %+v", desk.Color)
	}

	broken := c.LightByID(8)
	if broken == nil {
		t.Fatal("light 8 missing")
	}
	if broken.HasState {
		t.Error("stateless light should report HasState=false")
	}
}

func TestBuildCatalog_GroupDerivation(t *testing.T) {
	lights := []huego.Light{
		{ID: 1, Name: "First", State: state(true, 120, 30000, 100)},
		{ID: 2, Name: "Second", State: state(false, 10, 0, 0)},
	}
	groups := []huego.Group{
		{
			ID:         4,
			Name:       "Living room",
			Lights:     []string{"1", "2"},
			GroupState: &huego.GroupState{AnyOn: true, AllOn: false},
		},
		{
			ID:     5,
			Name:   "Empty zone",
			Lights: nil,
		},
	}

	c := buildCatalog(lights, groups, nil)

	lr := c.GroupByID(4)
	if lr == nil {
		t.Fatal("group 4 missing")
	}
	if !lr.On {
		t.Error("group On should mirror any_on")
	}
	// Brightness and color are borrowed from the first member light
	if lr.Bri != 120 {
		t.Errorf("group bri = %d, want 120", lr.Bri)
	}
	if lr.Color.Hue != 30000 {
		t.Errorf("group hue = %d, want 30000", lr.Color.Hue)
	}
	if len(lr.LightIDs) != 2 || lr.LightIDs[0] != 1 || lr.LightIDs[1] != 2 {
		t.Errorf("group light ids = %v", lr.LightIDs)
	}

	empty := c.GroupByID(5)
	if empty == nil {
		t.Fatal("group 5 missing")
	}
	if empty.HasState {
		t.Error("group without state should report HasState=false")
	}
	if empty.Bri != 0 {
		t.Errorf("empty group bri = %d, want zero value", empty.Bri)
	}
}

func TestBuildCatalog_GroupSkipsBadLightIDs(t *testing.T) {
	groups := []huego.Group{
		{ID: 1, Name: "G", Lights: []string{"3", "not-a-number", "5"}},
	}

	c := buildCatalog(nil, groups, nil)

	g := c.GroupByID(1)
	if g == nil {
		t.Fatal("group missing")
	}
	if len(g.LightIDs) != 2 || g.LightIDs[0] != 3 || g.LightIDs[1] != 5 {
		t.Errorf("light ids = %v", g.LightIDs)
	}
}

func TestBuildCatalog_Scenes(t *testing.T) {
	scenes := []huego.Scene{
		{ID: "abc", Name: "Relax", Group: "4"},
		{ID: "def", Name: "Bright", Group: "4"},
		{ID: "ghi", Name: "Nightlight", Group: ""}, // ungrouped
	}

	c := buildCatalog(nil, nil, scenes)

	if len(c.Scenes) != 3 {
		t.Fatalf("got %d scenes", len(c.Scenes))
	}
	// Sorted by name: Bright, Nightlight, Relax
	if c.Scenes[0].Name != "Bright" || c.Scenes[2].Name != "Relax" {
		t.Errorf("scene order: %v", c.Scenes)
	}

	for _, sc := range c.Scenes {
		want := 4
		if sc.Name == "Nightlight" {
			// Ungrouped scenes target group 0, the all-lights group
			want = 0
		}
		if sc.GroupID != want {
			t.Errorf("%s: group id = %d, want %d", sc.Name, sc.GroupID, want)
		}
	}
}

func TestCatalog_Lookups(t *testing.T) {
	var c Catalog
	if c.LightByID(1) != nil {
		t.Error("empty catalog should return nil light")
	}
	if c.GroupByID(1) != nil {
		t.Error("empty catalog should return nil group")
	}
}

func TestService_CatalogFromPersistedSnapshot(t *testing.T) {
	cfg, st := testDeps(t)

	session, err := NewSession(cfg, st)
	if err != nil {
		t.Fatal(err)
	}
	svc := NewService(session, st, time.Minute, 100, time.Second)
	t.Cleanup(svc.Close)

	snapshot := Catalog{
		Lights:   []Light{{ID: 1, Name: "Desk", HasState: true, On: true, Bri: 100}},
		LoadedAt: time.Now().UTC(),
	}
	if err := st.Put(store.BucketCatalog, catalogKey, snapshot, time.Minute); err != nil {
		t.Fatal(err)
	}

	// Unpaired session: only the persisted snapshot can satisfy this
	c, err := svc.Catalog(context.Background(), false)
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Lights) != 1 || c.Lights[0].Name != "Desk" {
		t.Errorf("catalog = %+v, want persisted snapshot", c.Lights)
	}

	// Invalidate drops it; the next load needs a bridge and fails
	svc.Invalidate()
	if _, err := svc.Catalog(context.Background(), false); err != ErrNotPaired {
		t.Errorf("err = %v, want ErrNotPaired after invalidation", err)
	}
}
