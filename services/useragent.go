package services

import "strings"

type UserAgentInfo struct {
	Browser    string
	OS         string
	DeviceType string
}

// ParseUserAgent classifies a User-Agent header into the coarse buckets the
// analytics dashboard charts. Order matters: Edge and Opera also carry
// "Chrome/", and iOS agents carry "Mac OS X".
func ParseUserAgent(ua string) UserAgentInfo {
	info := UserAgentInfo{Browser: "Other", OS: "Other", DeviceType: "desktop"}
	if strings.TrimSpace(ua) == "" {
		return info
	}
	lower := strings.ToLower(ua)

	switch {
	case strings.Contains(lower, "edg/"), strings.Contains(lower, "edge/"):
		info.Browser = "Edge"
	case strings.Contains(lower, "opr/"), strings.Contains(lower, "opera"):
		info.Browser = "Opera"
	case strings.Contains(lower, "samsungbrowser"):
		info.Browser = "Samsung Internet"
	case strings.Contains(lower, "firefox/"), strings.Contains(lower, "fxios/"):
		info.Browser = "Firefox"
	case strings.Contains(lower, "chrome/"), strings.Contains(lower, "crios/"):
		info.Browser = "Chrome"
	case strings.Contains(lower, "safari/"):
		info.Browser = "Safari"
	}

	switch {
	case strings.Contains(lower, "windows"):
		info.OS = "Windows"
	case strings.Contains(lower, "iphone"), strings.Contains(lower, "ipad"), strings.Contains(lower, "ipod"):
		info.OS = "iOS"
	case strings.Contains(lower, "android"):
		info.OS = "Android"
	case strings.Contains(lower, "cros"):
		info.OS = "ChromeOS"
	case strings.Contains(lower, "mac os x"), strings.Contains(lower, "macintosh"):
		info.OS = "macOS"
	case strings.Contains(lower, "linux"):
		info.OS = "Linux"
	}

	switch {
	case strings.Contains(lower, "bot"), strings.Contains(lower, "crawler"), strings.Contains(lower, "spider"):
		info.DeviceType = "bot"
	case strings.Contains(lower, "ipad"), strings.Contains(lower, "tablet"),
		strings.Contains(lower, "android") && !strings.Contains(lower, "mobile"):
		info.DeviceType = "tablet"
	case strings.Contains(lower, "mobi"), strings.Contains(lower, "iphone"), strings.Contains(lower, "ipod"):
		info.DeviceType = "mobile"
	}
	return info
}
