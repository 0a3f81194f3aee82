package core

import (
	"errors"
	"fmt"
)

// ErrInvalidBandwidth is returned when an explicit bandwidth override is
// negative. Zero means "no override" and never reaches validation.
var ErrInvalidBandwidth = errors.New("invalid bandwidth")

// DefaultBandwidthKHz is the bandwidth assigned to every channel name
// that matches no special preset, including the stock "LongFast".
const DefaultBandwidthKHz = 250

// ChannelBandwidthKHz maps a channel name to its preset bandwidth in
// kHz. Matching is exact and case-sensitive, the same convention the
// firmware uses for preset slugs: "shortturbo" or "LongFast " (trailing
// space) both fall through to the 250 kHz default rather than erroring.
// Note the slug for the Long Moderate preset is "LongMod".
func ChannelBandwidthKHz(channelName string) int {
	switch channelName {
	case "ShortTurbo":
		return 500
	case "LongMod", "LongSlow":
		return 125
	default:
		return DefaultBandwidthKHz
	}
}

// EffectiveBandwidthKHz settles the bandwidth for one resolution. A
// positive override always wins over the name-derived preset; zero asks
// for the preset; negative overrides fail with ErrInvalidBandwidth.
func EffectiveBandwidthKHz(channelName string, overrideKHz int) (int, error) {
	switch {
	case overrideKHz > 0:
		return overrideKHz, nil
	case overrideKHz < 0:
		return 0, fmt.Errorf("%w: %d kHz", ErrInvalidBandwidth, overrideKHz)
	default:
		return ChannelBandwidthKHz(channelName), nil
	}
}
