package bridge

import (
	"sort"
	"strings"
	"time"

	"github.com/clockworks/huepanel/internal/color"
)

// Light is the panel's view of a single light.
type Light struct {
	ID        int
	Name      string
	HasState  bool // some lights report no state at all; they render as inert
	On        bool
	Bri       uint8
	Color     color.HSV
	Reachable bool
}

// Group is the panel's view of a room or zone. On mirrors the bridge's
// any_on aggregate; Bri and Color are borrowed from the first member light,
// which is how the group row gets a slider position and a swatch.
type Group struct {
	ID       int
	Name     string
	HasState bool
	On       bool
	Bri      uint8
	Color    color.HSV
	LightIDs []int
}

// Scene is the panel's view of a recallable scene.
type Scene struct {
	ID      string
	Name    string
	GroupID int // 0 targets the bridge's all-lights group
}

// Catalog is one loaded snapshot of everything the panel shows.
type Catalog struct {
	Lights   []Light
	Groups   []Group
	Scenes   []Scene
	LoadedAt time.Time
}

// LightByID returns a pointer into the catalog's light slice, or nil.
func (c *Catalog) LightByID(id int) *Light {
	for i := range c.Lights {
		if c.Lights[i].ID == id {
			return &c.Lights[i]
		}
	}
	return nil
}

// GroupByID returns a pointer into the catalog's group slice, or nil.
func (c *Catalog) GroupByID(id int) *Group {
	for i := range c.Groups {
		if c.Groups[i].ID == id {
			return &c.Groups[i]
		}
	}
	return nil
}

// sortCatalog orders every collection case-insensitively by name, matching
// what the applet always displayed.
func sortCatalog(c *Catalog) {
	sort.SliceStable(c.Lights, func(i, j int) bool {
		return strings.ToLower(c.Lights[i].Name) < strings.ToLower(c.Lights[j].Name)
	})
	sort.SliceStable(c.Groups, func(i, j int) bool {
		return strings.ToLower(c.Groups[i].Name) < strings.ToLower(c.Groups[j].Name)
	})
	sort.SliceStable(c.Scenes, func(i, j int) bool {
		return strings.ToLower(c.Scenes[i].Name) < strings.ToLower(c.Scenes[j].Name)
	})
}
