package useragent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	uaIPhone     = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
	uaIPad       = "Mozilla/5.0 (iPad; CPU OS 16_5 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.5 Mobile/15E148 Safari/604.1"
	uaAndroid    = "Mozilla/5.0 (Linux; Android 13; Pixel 7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/114.0.0.0 Mobile Safari/537.36"
	uaWindowsEdg = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/114.0.0.0 Safari/537.36 Edg/114.0.1823.58"
	uaMacChrome  = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/114.0.0.0 Safari/537.36"
	uaLinuxFx    = "Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/114.0"
)

func TestParse_IPhone(t *testing.T) {
	ctx := Parse(uaIPhone, "203.0.113.9")

	assert.Equal(t, DeviceMobile, ctx.DeviceType)
	assert.Equal(t, "iPhone", ctx.DeviceInfo)
	assert.Equal(t, "safari", ctx.BrowserInfo)
	assert.Equal(t, "ios", ctx.Platform)
	assert.Equal(t, "203.0.113.9", ctx.IPAddress)
	assert.Equal(t, uaIPhone, ctx.UserAgent)
}

func TestParse_IPadIsTabletNotMobile(t *testing.T) {
	// iPad user agents also contain "Mobile"; the tablet table must win.
	ctx := Parse(uaIPad, "")

	assert.Equal(t, DeviceTablet, ctx.DeviceType)
	assert.Equal(t, "iPad", ctx.DeviceInfo)
	assert.Equal(t, "ios", ctx.Platform)
}

func TestParse_AndroidIsNotLinux(t *testing.T) {
	ctx := Parse(uaAndroid, "")

	assert.Equal(t, DeviceMobile, ctx.DeviceType)
	assert.Equal(t, "android", ctx.Platform)
	assert.Equal(t, "chrome", ctx.BrowserInfo)
}

func TestParse_EdgeBeforeChrome(t *testing.T) {
	// Chromium Edge carries a Chrome token; the edge pattern is checked first.
	ctx := Parse(uaWindowsEdg, "")

	assert.Equal(t, DeviceDesktop, ctx.DeviceType)
	assert.Equal(t, "edge", ctx.BrowserInfo)
	assert.Equal(t, "windows", ctx.Platform)
}

func TestParse_Desktop(t *testing.T) {
	tests := []struct {
		name     string
		ua       string
		browser  string
		platform string
	}{
		{"mac chrome", uaMacChrome, "chrome", "macos"},
		{"linux firefox", uaLinuxFx, "firefox", "linux"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := Parse(tt.ua, "")
			assert.Equal(t, DeviceDesktop, ctx.DeviceType)
			assert.Equal(t, tt.browser, ctx.BrowserInfo)
			assert.Equal(t, tt.platform, ctx.Platform)
		})
	}
}

func TestParse_UnknownAgent(t *testing.T) {
	ctx := Parse("curl/8.1.2", "")

	assert.Equal(t, DeviceDesktop, ctx.DeviceType)
	assert.Equal(t, "unknown", ctx.BrowserInfo)
	assert.Equal(t, "unknown", ctx.Platform)
	assert.Equal(t, "Unknown Device", ctx.DeviceInfo)
}
