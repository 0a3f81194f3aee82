// core/resolver.go
package core

// Request identifies one channel resolution: a region code from the
// catalog, the channel name to hash, and an optional bandwidth override
// in kHz. A zero override means "derive the bandwidth from the channel
// name".
type Request struct {
	Region       string
	Channel      string
	BandwidthKHz int
}

// Resolution is the outcome of resolving a Request. All fields are
// plain values and the struct is comparable: resolving the same request
// twice yields equal Resolutions.
type Resolution struct {
	Band         RegionBand
	Channel      string
	BandwidthKHz int
	SlotCount    int
	SlotIndex    int
	FrequencyMHz float64
}

// SlotNumber returns the one-based slot number used in human-facing
// output. All arithmetic uses the zero-based SlotIndex; the +1 is a
// display convention only.
func (r Resolution) SlotNumber() int {
	return r.SlotIndex + 1
}

// Resolve maps a channel name to its frequency slot within a regional
// band: look up the region, settle the effective bandwidth, derive the
// slot count, hash the name, select the slot, place the centre
// frequency. Every step is pure; there is no caching and no I/O.
//
// Failures surface as ErrUnknownRegion, ErrInvalidBandwidth or
// ErrDegenerateBand (all wrapped, match with errors.Is). No partial
// Resolution is ever returned alongside an error.
func Resolve(req Request) (Resolution, error) {
	band, err := LookupRegion(req.Region)
	if err != nil {
		return Resolution{}, err
	}

	bw, err := EffectiveBandwidthKHz(req.Channel, req.BandwidthKHz)
	if err != nil {
		return Resolution{}, err
	}

	count, err := SlotCount(band, bw)
	if err != nil {
		return Resolution{}, err
	}

	idx := SlotIndex(ChannelHash(req.Channel), count)

	return Resolution{
		Band:         band,
		Channel:      req.Channel,
		BandwidthKHz: bw,
		SlotCount:    count,
		SlotIndex:    idx,
		FrequencyMHz: SlotFrequencyMHz(band, idx, bw),
	}, nil
}
