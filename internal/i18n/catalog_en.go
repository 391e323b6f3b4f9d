package i18n

var catalogEN = map[string]string{
	"app-title": "Hue Panel",

	// Discovery & pairing
	"configure":                "Configure",
	"no-bridge-configured":     "No bridge configured",
	"searching-for-bridges":    "Searching for bridges...",
	"bridge-found":             "Bridge found at {ip}",
	"bridge-found-description": "Press the link button on the bridge, then pair.",
	"bridge":                   "Bridge: {ip}",
	"pair-bridge":              "Pair bridge",
	"pairing":                  "Pairing...",
	"link-button-not-pressed":  "Link button not pressed. Press it and try again.",
	"no-bridge-found":          "No bridge found on the network",
	"unpair-bridge":            "Unpair bridge",
	"bridge-ip":                "Bridge IP",
	"error":                    "Error: {error}",

	// Sections
	"lights":          "Lights",
	"groups":          "Groups",
	"scenes":          "Scenes",
	"no-lights-found": "No lights found",
	"no-groups-found": "No groups found",
	"no-scenes-found": "No scenes found",

	// Items
	"light-has-no-state": "{name} has no state",
	"scene-activated":    "Scene {name} activated",
	"loading":            "Loading...",
	"on":                 "on",
	"off":                "off",

	// Key help
	"help-navigate":   "navigate",
	"help-toggle":     "toggle",
	"help-brightness": "brightness",
	"help-hue":        "hue",
	"help-saturation": "saturation",
	"help-section":    "switch section",
	"help-reload":     "reload",
	"help-activate":   "activate",
	"help-more":       "menu",
	"help-quit":       "quit",
	"help-back":       "back",
	"help-discover":   "discover",
	"help-pair":       "pair",
}
