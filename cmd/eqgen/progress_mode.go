package main

import (
	"fmt"
	"os"
	"strings"
)

// progressSetting is the parsed --ui flag: the interactive progress
// display can be forced, suppressed, or left to follow the terminal.
type progressSetting uint8

const (
	progressAuto progressSetting = iota
	progressForced
	progressSuppressed
)

func parseProgressSetting(value string) (progressSetting, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return progressAuto, nil
	case "on":
		return progressForced, nil
	case "off":
		return progressSuppressed, nil
	}
	return progressAuto, fmt.Errorf("--ui accepts auto, on or off; got %q", value)
}

// wantProgress decides whether this run drives the progress display.
func (s progressSetting) wantProgress() bool {
	switch s {
	case progressForced:
		return true
	case progressSuppressed:
		return false
	}
	return isTerminal(os.Stdout)
}
