package panel

import (
	"github.com/clockworks/huepanel/internal/bridge"
)

// Messages mirror the applet's event vocabulary: each user action issues
// one async bridge call whose completion comes back as one of these.

// discoveryFinishedMsg reports the outcome of a bridge discovery run.
type discoveryFinishedMsg struct {
	address string
	err     error
}

// pairFinishedMsg reports the outcome of a pairing attempt.
type pairFinishedMsg struct {
	username string
	err      error
}

// unpairedMsg reports that the stored pairing was cleared.
type unpairedMsg struct {
	err error
}

// catalogLoadedMsg carries a freshly loaded snapshot.
type catalogLoadedMsg struct {
	catalog bridge.Catalog
	err     error
}

// writeDoneMsg reports completion of a toggle/brightness/color write.
type writeDoneMsg struct {
	err error
}

// sceneRecalledMsg reports completion of a scene recall.
type sceneRecalledMsg struct {
	name string
	err  error
}

// settleElapsedMsg fires after the post-recall settle delay; the catalog is
// reloaded then so transitional light values are not captured.
type settleElapsedMsg struct{}

// applyBrightnessMsg fires when a brightness quiet period ends.
type applyBrightnessMsg struct {
	key string
	gen uint64
}

// applyColorMsg fires when a color quiet period ends.
type applyColorMsg struct {
	key string
	gen uint64
}

// lightUpdateMsg is a state change observed on the event stream.
type lightUpdateMsg bridge.LightUpdate

// streamClosedMsg signals that the update channel was closed.
type streamClosedMsg struct{}
