package core

import (
	"errors"
	"testing"
)

func TestChannelBandwidthKHz(t *testing.T) {
	tests := []struct {
		channel string
		want    int
	}{
		{channel: "ShortTurbo", want: 500},
		{channel: "LongMod", want: 125},
		{channel: "LongSlow", want: 125},
		{channel: "LongFast", want: 250},
		{channel: "ShortFast", want: 250},
		{channel: "MediumSlow", want: 250},
		// Exact match only: near-misses take the default, they do not error.
		{channel: "shortturbo", want: 250},
		{channel: "LongSlow ", want: 250},
		{channel: "LongModerate", want: 250},
		{channel: "", want: 250},
		{channel: "my private mesh", want: 250},
	}

	for _, tc := range tests {
		if got := ChannelBandwidthKHz(tc.channel); got != tc.want {
			t.Errorf("ChannelBandwidthKHz(%q) = %d, want %d", tc.channel, got, tc.want)
		}
	}
}

func TestEffectiveBandwidthKHz_OverrideWins(t *testing.T) {
	got, err := EffectiveBandwidthKHz("ShortTurbo", 125)
	if err != nil {
		t.Fatalf("EffectiveBandwidthKHz err = %v, want nil", err)
	}
	if got != 125 {
		t.Errorf("override ignored: got %d, want 125", got)
	}
}

func TestEffectiveBandwidthKHz_ZeroMeansPreset(t *testing.T) {
	got, err := EffectiveBandwidthKHz("ShortTurbo", 0)
	if err != nil {
		t.Fatalf("EffectiveBandwidthKHz err = %v, want nil", err)
	}
	if got != 500 {
		t.Errorf("EffectiveBandwidthKHz(ShortTurbo, 0) = %d, want 500", got)
	}
}

func TestEffectiveBandwidthKHz_NegativeRejected(t *testing.T) {
	_, err := EffectiveBandwidthKHz("LongFast", -5)
	if err == nil {
		t.Fatal("EffectiveBandwidthKHz(LongFast, -5) = nil, want error")
	}
	if !errors.Is(err, ErrInvalidBandwidth) {
		t.Errorf("err = %v, want ErrInvalidBandwidth", err)
	}
}
