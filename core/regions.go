package core

import (
	"errors"
	"fmt"
)

// ErrUnknownRegion is returned when a region code has no entry in the
// regional band catalog. Codes match exactly and are case-sensitive.
var ErrUnknownRegion = errors.New("unknown region")

// RegionBand describes the usable LoRa frequency band for one regulatory
// region. Frequencies are in MHz. SpacingMHz is extra guard spacing
// between adjacent channel slots; every shipped region carries 0 today,
// but the value participates in the slot arithmetic and must not be
// treated as dead.
type RegionBand struct {
	Code        string
	StartMHz    float64
	EndMHz      float64
	SpacingMHz  float64
	Description string
}

// WidthMHz returns the usable width of the band.
func (b RegionBand) WidthMHz() float64 {
	return b.EndMHz - b.StartMHz
}

// regionCatalog is the fixed regional band table. Order matters: it is
// the order regions are listed to users, so entries stay in this
// declared order rather than sorted by code.
var regionCatalog = []RegionBand{
	{Code: "US", StartMHz: 902.0, EndMHz: 928.0, Description: "North America - 915 MHz ISM Band"},
	{Code: "EU_868", StartMHz: 863.0, EndMHz: 870.0, Description: "Europe - 868 MHz ISM Band"},
	{Code: "EU_433", StartMHz: 433.0, EndMHz: 434.79, Description: "Europe - 433 MHz ISM Band"},
	{Code: "ANZ", StartMHz: 915.0, EndMHz: 928.0, Description: "Australia/New Zealand - 915 MHz ISM Band"},
	{Code: "NZ_865", StartMHz: 864.0, EndMHz: 868.0, Description: "New Zealand - 865 MHz Band"},
	{Code: "CN", StartMHz: 470.0, EndMHz: 510.0, Description: "China - 470-510 MHz Band"},
	{Code: "JP", StartMHz: 920.0, EndMHz: 928.0, Description: "Japan - 920 MHz Band"},
	{Code: "KR", StartMHz: 920.0, EndMHz: 923.0, Description: "Korea - 920 MHz Band"},
	{Code: "TW", StartMHz: 920.0, EndMHz: 925.0, Description: "Taiwan - 920 MHz Band"},
	{Code: "RU", StartMHz: 868.7, EndMHz: 869.2, Description: "Russia - 868 MHz Band"},
	{Code: "IN", StartMHz: 865.0, EndMHz: 867.0, Description: "India - 865 MHz Band"},
	{Code: "NP_865", StartMHz: 865.0, EndMHz: 867.0, Description: "Nepal - 865 MHz Band"},
	{Code: "TH", StartMHz: 920.0, EndMHz: 925.0, Description: "Thailand - 920 MHz Band"},
	{Code: "MY_919", StartMHz: 919.0, EndMHz: 924.0, Description: "Malaysia - 919 MHz Band"},
	{Code: "MY_433", StartMHz: 433.0, EndMHz: 435.0, Description: "Malaysia - 433 MHz Band"},
	{Code: "SG_923", StartMHz: 920.0, EndMHz: 925.0, Description: "Singapore - 923 MHz Band"},
	{Code: "UA_868", StartMHz: 863.0, EndMHz: 870.0, Description: "Ukraine - 868 MHz Band"},
	{Code: "UA_433", StartMHz: 433.0, EndMHz: 434.79, Description: "Ukraine - 433 MHz Band"},
}

// regionIndex maps region code to catalog position for O(1) lookups.
// Built once; the catalog is never mutated after init.
var regionIndex = buildRegionIndex()

func buildRegionIndex() map[string]int {
	idx := make(map[string]int, len(regionCatalog))
	for i, b := range regionCatalog {
		idx[b.Code] = i
	}
	return idx
}

// LookupRegion returns the band definition for the given region code, or
// ErrUnknownRegion if the code is not in the catalog.
func LookupRegion(code string) (RegionBand, error) {
	i, ok := regionIndex[code]
	if !ok {
		return RegionBand{}, fmt.Errorf("%w: %q", ErrUnknownRegion, code)
	}
	return regionCatalog[i], nil
}

// Regions returns every band definition in declared catalog order. The
// returned slice is a copy; callers may modify it without affecting the
// catalog.
func Regions() []RegionBand {
	out := make([]RegionBand, len(regionCatalog))
	copy(out, regionCatalog)
	return out
}
