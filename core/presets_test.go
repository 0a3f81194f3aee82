package core

import "testing"

func TestPresets_CatalogOrder(t *testing.T) {
	want := []string{
		"ShortTurbo", "ShortFast", "ShortSlow",
		"MediumFast", "MediumSlow",
		"LongFast", "LongMod", "LongSlow",
	}

	got := Presets()
	if len(got) != len(want) {
		t.Fatalf("len(Presets()) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Presets()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPresets_SlugsHitTheBandwidthPolicy(t *testing.T) {
	// Every non-250 preset must map through the exact-match policy; a
	// wrong slug ("LongModerate") would silently land on 250.
	wantBW := map[string]int{
		"ShortTurbo": 500,
		"ShortFast":  250,
		"ShortSlow":  250,
		"MediumFast": 250,
		"MediumSlow": 250,
		"LongFast":   250,
		"LongMod":    125,
		"LongSlow":   125,
	}

	for _, name := range Presets() {
		want, ok := wantBW[name]
		if !ok {
			t.Errorf("unexpected preset %q", name)
			continue
		}
		if got := ChannelBandwidthKHz(name); got != want {
			t.Errorf("ChannelBandwidthKHz(%s) = %d, want %d", name, got, want)
		}
	}
}

func TestPresets_ReturnsCopy(t *testing.T) {
	mutated := Presets()
	mutated[0] = "Garbage"

	if fresh := Presets(); fresh[0] != "ShortTurbo" {
		t.Errorf("preset catalog mutated through Presets() result: %q", fresh[0])
	}
}

func TestResolvePresets_US(t *testing.T) {
	plan, err := ResolvePresets("US")
	if err != nil {
		t.Fatalf("ResolvePresets(US) err = %v", err)
	}
	if len(plan) != 8 {
		t.Fatalf("len(plan) = %d, want 8", len(plan))
	}

	for i, res := range plan {
		if res.Channel != Presets()[i] {
			t.Errorf("plan[%d].Channel = %q, want %q", i, res.Channel, Presets()[i])
		}
		if res.Band.Code != "US" {
			t.Errorf("plan[%d].Band.Code = %q, want US", i, res.Band.Code)
		}
	}

	// LongFast is the sixth preset; its plan row must agree with a
	// direct resolution.
	direct, err := Resolve(Request{Region: "US", Channel: "LongFast"})
	if err != nil {
		t.Fatalf("Resolve err = %v", err)
	}
	if plan[5] != direct {
		t.Errorf("plan row diverges from direct resolution:\n plan = %+v\ndirect = %+v", plan[5], direct)
	}
}

func TestResolvePresets_EveryRegion(t *testing.T) {
	for _, band := range Regions() {
		plan, err := ResolvePresets(band.Code)
		if err != nil {
			t.Errorf("ResolvePresets(%s) err = %v", band.Code, err)
			continue
		}
		if len(plan) != 8 {
			t.Errorf("ResolvePresets(%s) returned %d rows, want 8", band.Code, len(plan))
		}
	}
}

func TestResolvePresets_UnknownRegion(t *testing.T) {
	if _, err := ResolvePresets("XX"); err == nil {
		t.Fatal("ResolvePresets(XX) = nil, want error")
	}
}
