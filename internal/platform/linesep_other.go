//go:build !windows

package platform

const lineSeparator = "\n"
