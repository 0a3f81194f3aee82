package core

import (
	"errors"
	"fmt"
	"math"
)

// ErrDegenerateBand is returned when a band cannot fit even one channel
// slot at the requested bandwidth. This is a hard error: there is no
// frequency to fall back to, and clamping the count to 1 would put the
// channel outside the band.
var ErrDegenerateBand = errors.New("band too narrow for bandwidth")

// SlotCount returns how many channel slots of the given bandwidth fit
// in the band. The slot pitch is the channel spacing plus the bandwidth
// converted to MHz; the count is the floor of band width over pitch.
func SlotCount(band RegionBand, bandwidthKHz int) (int, error) {
	if bandwidthKHz <= 0 {
		return 0, fmt.Errorf("%w: %d kHz", ErrInvalidBandwidth, bandwidthKHz)
	}

	pitch := band.SpacingMHz + float64(bandwidthKHz)/1000.0
	n := int(math.Floor(band.WidthMHz() / pitch))
	if n <= 0 {
		return 0, fmt.Errorf("%w: %s (%g MHz wide) fits no %d kHz slot",
			ErrDegenerateBand, band.Code, band.WidthMHz(), bandwidthKHz)
	}
	return n, nil
}

// SlotIndex selects the zero-based slot for a channel hash. slotCount
// must be >= 1; unsigned modulus keeps the result in [0, slotCount-1].
func SlotIndex(hash uint32, slotCount int) int {
	return int(hash % uint32(slotCount))
}
