package auth

import (
	"strings"

	"github.com/mssola/useragent"
)

// DescribeDevice turns a User-Agent header into a short human-readable
// description ("Chrome 120 on Linux") for the audit trail.
func DescribeDevice(ua string) string {
	if strings.TrimSpace(ua) == "" {
		return "Unknown Device"
	}
	parsed := useragent.New(ua)
	browser, version := parsed.Browser()
	os := trimArch(parsed.OS())
	if browser == "" {
		browser = "Unknown Browser"
	}
	if os == "" {
		os = "Unknown OS"
	}
	if major, _, ok := strings.Cut(version, "."); ok && major != "" {
		browser = browser + " " + major
	} else if version != "" {
		browser = browser + " " + version
	}
	return strings.TrimSpace(browser + " on " + os)
}

// trimArch strips the CPU architecture X11 agents append to the platform
// token ("Linux x86_64").
func trimArch(os string) string {
	for _, arch := range []string{" x86_64", " i686", " i586", " i386", " amd64", " arm64", " aarch64"} {
		os = strings.TrimSuffix(os, arch)
	}
	return os
}
