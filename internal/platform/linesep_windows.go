//go:build windows

package platform

const lineSeparator = "\r\n"
