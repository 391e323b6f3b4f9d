package i18n

var catalogFR = map[string]string{
	"app-title": "Panneau Hue",

	// Discovery & pairing
	"configure":                "Configurer",
	"no-bridge-configured":     "Aucun pont configuré",
	"searching-for-bridges":    "Recherche de ponts...",
	"bridge-found":             "Pont trouvé à {ip}",
	"bridge-found-description": "Appuyez sur le bouton du pont, puis appairez.",
	"bridge":                   "Pont : {ip}",
	"pair-bridge":              "Appairer le pont",
	"pairing":                  "Appairage...",
	"link-button-not-pressed":  "Bouton non pressé. Appuyez dessus et réessayez.",
	"no-bridge-found":          "Aucun pont trouvé sur le réseau",
	"unpair-bridge":            "Dissocier le pont",
	"bridge-ip":                "IP du pont",
	"error":                    "Erreur : {error}",

	// Sections
	"lights":          "Lampes",
	"groups":          "Groupes",
	"scenes":          "Scènes",
	"no-lights-found": "Aucune lampe trouvée",
	"no-groups-found": "Aucun groupe trouvé",
	"no-scenes-found": "Aucune scène trouvée",

	// Items
	"light-has-no-state": "{name} n'a pas d'état",
	"scene-activated":    "Scène {name} activée",
	"loading":            "Chargement...",
	"on":                 "allumé",
	"off":                "éteint",

	// Key help
	"help-navigate":   "naviguer",
	"help-toggle":     "basculer",
	"help-brightness": "luminosité",
	"help-hue":        "teinte",
	"help-saturation": "saturation",
	"help-section":    "changer de section",
	"help-reload":     "recharger",
	"help-activate":   "activer",
	"help-more":       "menu",
	"help-quit":       "quitter",
	"help-back":       "retour",
	"help-discover":   "découvrir",
	"help-pair":       "appairer",
}
