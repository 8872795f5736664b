// Package visitor records anonymous page visits for the admin dashboard.
package visitor

import "strings"

const (
	DeviceMobile  = "Mobile"
	DeviceTablet  = "Tablet"
	DeviceDesktop = "Desktop"

	BrowserEdge    = "Edge"
	BrowserOpera   = "Opera"
	BrowserChrome  = "Chrome"
	BrowserFirefox = "Firefox"
	BrowserSafari  = "Safari"
	BrowserOther   = "Other"
)

// Classify derives the device type and browser family from a User-Agent
// header. Chromium based browsers announce Chrome and Safari too, so the
// more specific tokens are checked first.
func Classify(userAgent string) (device, browser string) {
	ua := strings.ToLower(userAgent)
	return classifyDevice(ua), classifyBrowser(ua)
}

func classifyDevice(ua string) string {
	switch {
	case containsAny(ua, "ipad", "tablet", "kindle", "silk/", "playbook"):
		return DeviceTablet
	case strings.Contains(ua, "android") && !strings.Contains(ua, "mobile"):
		return DeviceTablet
	case containsAny(ua, "mobi", "iphone", "ipod", "android", "windows phone"):
		return DeviceMobile
	default:
		return DeviceDesktop
	}
}

func classifyBrowser(ua string) string {
	switch {
	case containsAny(ua, "edg/", "edge/", "edga/", "edgios/"):
		return BrowserEdge
	case containsAny(ua, "opr/", "opera"):
		return BrowserOpera
	case containsAny(ua, "chrome/", "crios/", "chromium/"):
		return BrowserChrome
	case containsAny(ua, "firefox/", "fxios/"):
		return BrowserFirefox
	case strings.Contains(ua, "safari/"):
		return BrowserSafari
	default:
		return BrowserOther
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
