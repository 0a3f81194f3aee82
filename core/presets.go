package core

// presetNames lists the firmware modem presets by channel-name slug,
// fastest to slowest. These are the strings the firmware uses as the
// default channel name for each preset, so they are exactly what feeds
// the channel hash. The Long Moderate preset's slug is "LongMod", not
// "LongModerate"; the short form is what goes over the air.
var presetNames = []string{
	"ShortTurbo",
	"ShortFast",
	"ShortSlow",
	"MediumFast",
	"MediumSlow",
	"LongFast",
	"LongMod",
	"LongSlow",
}

// Presets returns the modem-preset channel names in catalog order. The
// returned slice is a copy.
func Presets() []string {
	out := make([]string, len(presetNames))
	copy(out, presetNames)
	return out
}

// ResolvePresets resolves every modem preset for one region with no
// bandwidth override, yielding the region's stock channel plan in
// preset order. The first failed resolution aborts the plan.
func ResolvePresets(regionCode string) ([]Resolution, error) {
	plan := make([]Resolution, 0, len(presetNames))
	for _, name := range presetNames {
		res, err := Resolve(Request{Region: regionCode, Channel: name})
		if err != nil {
			return nil, err
		}
		plan = append(plan, res)
	}
	return plan, nil
}
