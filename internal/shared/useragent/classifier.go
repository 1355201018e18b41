// Package useragent derives a device descriptor from a request's User-Agent
// string. Classification happens once, at session creation, and is stored
// with the session; it is never recomputed on later requests.
package useragent

import "strings"

// Device type labels.
const (
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceDesktop = "desktop"
)

// DeviceContext is the parsed descriptor persisted on a session row.
type DeviceContext struct {
	DeviceType  string
	DeviceInfo  string
	BrowserInfo string
	Platform    string
	IPAddress   string
	UserAgent   string
}

type match struct {
	pattern string
	label   string
}

// Match tables are ordered and evaluated first-hit-wins. The order is load
// bearing and intentional:
//
//   - tablet patterns run before mobile ones, because iPad user agents also
//     contain "Mobile";
//   - "edg" runs before "chrome", because Chromium Edge carries a Chrome
//     token (checking chrome first would misclassify every Edge browser);
//   - "iphone"/"ipad"/"android" run before "mac"/"linux", because iOS agents
//     contain "like Mac OS X" and Android agents contain "Linux".
var (
	tabletMatches = []match{
		{"tablet", DeviceTablet},
		{"ipad", DeviceTablet},
	}

	mobileMatches = []match{
		{"mobile", DeviceMobile},
		{"android", DeviceMobile},
		{"iphone", DeviceMobile},
	}

	browserMatches = []match{
		{"edg", "edge"},
		{"chrome", "chrome"},
		{"firefox", "firefox"},
		{"safari", "safari"},
	}

	platformMatches = []match{
		{"iphone", "ios"},
		{"ipad", "ios"},
		{"android", "android"},
		{"windows", "windows"},
		{"mac", "macos"},
		{"linux", "linux"},
	}

	deviceInfoMatches = []match{
		{"iphone", "iPhone"},
		{"ipad", "iPad"},
		{"android", "Android Device"},
		{"windows", "Windows PC"},
		{"mac", "Mac"},
		{"linux", "Linux PC"},
	}
)

// Parse classifies a user agent and bundles it with the client address.
func Parse(rawUA, ipAddress string) DeviceContext {
	ua := strings.ToLower(rawUA)

	return DeviceContext{
		DeviceType:  classifyDevice(ua),
		DeviceInfo:  lookup(ua, deviceInfoMatches, "Unknown Device"),
		BrowserInfo: lookup(ua, browserMatches, "unknown"),
		Platform:    lookup(ua, platformMatches, "unknown"),
		IPAddress:   ipAddress,
		UserAgent:   rawUA,
	}
}

func classifyDevice(ua string) string {
	if label := lookup(ua, tabletMatches, ""); label != "" {
		return label
	}
	if label := lookup(ua, mobileMatches, ""); label != "" {
		return label
	}
	return DeviceDesktop
}

func lookup(ua string, table []match, fallback string) string {
	for _, m := range table {
		if strings.Contains(ua, m.pattern) {
			return m.label
		}
	}
	return fallback
}
