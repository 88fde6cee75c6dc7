// Package device derives human-readable device display names from User-Agent
// strings for the audit trail.
package device

import (
	"fmt"
	"strings"

	"github.com/mssola/useragent"
)

// ParseUserAgent turns a raw User-Agent into a "Browser on OS" display name.
// Unknown or empty input degrades gracefully rather than failing.
func ParseUserAgent(uaString string) string {
	if strings.TrimSpace(uaString) == "" {
		return "Unknown Device"
	}

	ua := useragent.New(uaString)

	browser, _ := ua.Browser()
	if browser == "" {
		browser = "Unknown Browser"
	}

	osName := ua.OS()
	platform := ua.Platform()
	switch {
	case osName == "" && platform == "":
		osName = "Unknown OS"
	case osName == "":
		osName = platform
	case platform != "" && platform != "Macintosh" && platform != "X11" &&
		platform != "Windows" && !strings.Contains(osName, platform):
		osName = platform + " " + osName
	}

	return fmt.Sprintf("%s on %s", browser, osName)
}
