// internal/api/types.go
package api

import (
	"github.com/signalsfoundry/meshfreq/core"
)

// regionPayload is the wire form of a region band.
type regionPayload struct {
	Code        string  `json:"code"`
	Description string  `json:"description"`
	StartMhz    float64 `json:"startMhz"`
	EndMhz      float64 `json:"endMhz"`
	SpacingMhz  float64 `json:"spacingMhz"`
}

// resolutionPayload is the wire form of a single channel resolution.
type resolutionPayload struct {
	Region       regionPayload `json:"region"`
	Channel      string        `json:"channel"`
	BandwidthKhz int           `json:"bandwidthKhz"`
	SlotCount    int           `json:"slotCount"`
	SlotIndex    int           `json:"slotIndex"`
	SlotNumber   int           `json:"slotNumber"`
	FrequencyMhz float64       `json:"frequencyMhz"`
}

// planEntryPayload is one preset row of a channel plan. The region is
// carried once on the enclosing planPayload.
type planEntryPayload struct {
	Channel      string  `json:"channel"`
	BandwidthKhz int     `json:"bandwidthKhz"`
	SlotCount    int     `json:"slotCount"`
	SlotIndex    int     `json:"slotIndex"`
	SlotNumber   int     `json:"slotNumber"`
	FrequencyMhz float64 `json:"frequencyMhz"`
}

// planPayload is the wire form of a full preset channel plan for a region.
type planPayload struct {
	Region   regionPayload      `json:"region"`
	Channels []planEntryPayload `json:"channels"`
}

// regionsPayload wraps the catalog listing.
type regionsPayload struct {
	Regions []regionPayload `json:"regions"`
}

// errorPayload is the wire form of a request failure. ValidRegions is
// populated for unknown-region errors so clients can self-correct.
type errorPayload struct {
	Error        string   `json:"error"`
	ValidRegions []string `json:"validRegions,omitempty"`
}

func regionToPayload(band core.RegionBand) regionPayload {
	return regionPayload{
		Code:        band.Code,
		Description: band.Description,
		StartMhz:    band.StartMHz,
		EndMhz:      band.EndMHz,
		SpacingMhz:  band.SpacingMHz,
	}
}

func resolutionToPayload(res core.Resolution) resolutionPayload {
	return resolutionPayload{
		Region:       regionToPayload(res.Band),
		Channel:      res.Channel,
		BandwidthKhz: res.BandwidthKHz,
		SlotCount:    res.SlotCount,
		SlotIndex:    res.SlotIndex,
		SlotNumber:   res.SlotNumber(),
		FrequencyMhz: res.FrequencyMHz,
	}
}

func planToPayload(band core.RegionBand, resolutions []core.Resolution) planPayload {
	entries := make([]planEntryPayload, 0, len(resolutions))
	for _, res := range resolutions {
		entries = append(entries, planEntryPayload{
			Channel:      res.Channel,
			BandwidthKhz: res.BandwidthKHz,
			SlotCount:    res.SlotCount,
			SlotIndex:    res.SlotIndex,
			SlotNumber:   res.SlotNumber(),
			FrequencyMhz: res.FrequencyMHz,
		})
	}
	return planPayload{
		Region:   regionToPayload(band),
		Channels: entries,
	}
}

func regionCodes(bands []core.RegionBand) []string {
	codes := make([]string, 0, len(bands))
	for _, band := range bands {
		codes = append(codes, band.Code)
	}
	return codes
}
