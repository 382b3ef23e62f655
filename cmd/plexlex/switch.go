package main

import (
	"fmt"
	"os"
	"strings"
)

// switchMode is the value of an auto|on|off flag.
type switchMode string

const (
	switchAuto switchMode = "auto"
	switchOn   switchMode = "on"
	switchOff  switchMode = "off"
)

// readSwitch parses the value of the auto|on|off flag name. "always" and
// "never" are accepted as aliases.
func readSwitch(name, value string) (switchMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return switchAuto, nil
	case "on", "always":
		return switchOn, nil
	case "off", "never":
		return switchOff, nil
	default:
		return "", fmt.Errorf("invalid --%s value %q (expected auto|on|off)", name, value)
	}
}

// useColor resolves auto against the terminal state of f and the NO_COLOR
// convention.
func useColor(mode switchMode, f *os.File) bool {
	if mode == switchAuto {
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false
		}
	}
	return mode.on(f)
}

// shouldUseTUI decides on the progress view. It draws on stderr so that
// stdout stays a clean token listing.
func shouldUseTUI(mode switchMode) bool {
	return mode.on(os.Stderr)
}

func (m switchMode) on(f *os.File) bool {
	switch m {
	case switchOn:
		return true
	case switchOff:
		return false
	}
	return isTerminal(f)
}
