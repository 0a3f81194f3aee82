package core

// SlotFrequencyMHz returns the centre frequency of a slot in MHz. The
// first slot centre sits half a channel width above the band start and
// consecutive centres advance by one channel width. Spacing affects the
// slot count only, never the centre placement; that matches the
// firmware's arithmetic.
func SlotFrequencyMHz(band RegionBand, slotIndex, bandwidthKHz int) float64 {
	bwMHz := float64(bandwidthKHz) / 1000.0
	// The float64 conversion pins the product before the final add, so
	// results stay identical between FMA and non-FMA builds.
	return band.StartMHz + bwMHz/2.0 + float64(float64(slotIndex)*bwMHz)
}
