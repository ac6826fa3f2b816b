package rclone

import (
	"errors"
	"fmt"
	"strings"

	"lazycloud/internal/config"
)

// ErrUnknownMode reports a profile mode with no command template.
var ErrUnknownMode = errors.New("unknown mode")

// Supported profile modes.
const (
	ModeReplace = "replace"
	ModeMirror  = "mirror"
	ModeCopy    = "copy"
	ModeMove    = "move"
)

var modeTemplates = map[string][]string{
	ModeReplace: {"sync", "--delete-excluded"},
	ModeMirror:  {"sync"},
	ModeCopy:    {"copy"},
	ModeMove:    {"move"},
}

// Modes returns the supported mode keywords in documentation order.
func Modes() []string {
	return []string{ModeReplace, ModeMirror, ModeCopy, ModeMove}
}

// BuildArgs returns the rclone arguments for a profile.
func BuildArgs(p config.Profile) ([]string, error) {
	template, ok := modeTemplates[p.Mode]
	if !ok {
		return nil, fmt.Errorf("%w %q for profile %q (want one of %s)", ErrUnknownMode, p.Mode, p.Name, strings.Join(Modes(), ", "))
	}
	args := make([]string, 0, len(template)+2)
	args = append(args, template...)
	args = append(args, p.From, p.To)
	args = append(args, strings.Fields(p.Flags)...)
	return args, nil
}
