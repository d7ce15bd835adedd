package auth_handlers

import "strings"

type uaRule struct {
	needle string
	label  string
}

// Reihenfolge zählt: iPad/iPhone vor macOS, Edge/Opera vor Chrome, Chrome vor Safari.
var platformRules = []uaRule{
	{"android", "Android"},
	{"iphone", "iPhone"},
	{"ipad", "iPad"},
	{"windows", "Windows"},
	{"macintosh", "macOS"},
	{"cros", "ChromeOS"},
	{"linux", "Linux"},
}

var clientRules = []uaRule{
	{"edg/", "Edge"},
	{"opr/", "Opera"},
	{"firefox/", "Firefox"},
	{"chrome/", "Chrome"},
	{"safari/", "Safari"},
	{"curl/", "curl"},
	{"postman", "Postman"},
}

func matchRule(ua string, rules []uaRule) string {
	for _, r := range rules {
		if strings.Contains(ua, r.needle) {
			return r.label
		}
	}
	return ""
}

// deviceLabel baut die Anzeige für die Session-Liste, z.B. "Firefox on Linux".
func deviceLabel(userAgent string) string {
	ua := strings.ToLower(userAgent)
	platform := matchRule(ua, platformRules)
	client := matchRule(ua, clientRules)

	switch {
	case client != "" && platform != "":
		return client + " on " + platform
	case platform != "":
		return platform
	case client != "":
		return client
	default:
		return "Unknown Device"
	}
}
