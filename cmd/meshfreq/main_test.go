package main

import (
	"bytes"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRunDefaultResolution(t *testing.T) {
	code, stdout, stderr := runCLI(t)

	if code != 0 {
		t.Fatalf("exit code = %d, want 0 (stderr: %s)", code, stderr)
	}

	want := `Region: US (North America - 915 MHz ISM Band)
Frequency Range: 902 - 928 MHz
Channel Name: LongFast
Number of Frequency Slots: 104
Frequency Slot: 20
Selected Frequency: 906.875 MHz
Bandwidth: 250 kHz
`
	if stdout != want {
		t.Errorf("output mismatch\ngot:\n%s\nwant:\n%s", stdout, want)
	}
}

func TestRunEUSlowChannel(t *testing.T) {
	code, stdout, _ := runCLI(t, "-r", "EU_433", "-n", "LongSlow")

	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	for _, line := range []string{
		"Region: EU_433 (Europe - 433 MHz ISM Band)",
		"Number of Frequency Slots: 14",
		"Selected Frequency: 434.5625 MHz",
		"Bandwidth: 125 kHz",
	} {
		if !strings.Contains(stdout, line) {
			t.Errorf("output is missing %q\ngot:\n%s", line, stdout)
		}
	}
}

func TestRunBandwidthOverride(t *testing.T) {
	code, stdout, _ := runCLI(t, "-r", "JP", "-n", "ShortTurbo", "--bandwidth=62")

	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if !strings.Contains(stdout, "Number of Frequency Slots: 129") {
		t.Errorf("output is missing the 129-slot count\ngot:\n%s", stdout)
	}
	if !strings.Contains(stdout, "Bandwidth: 62 kHz") {
		t.Errorf("output is missing the overridden bandwidth\ngot:\n%s", stdout)
	}
}

func TestRunRegionHelp(t *testing.T) {
	code, stdout, _ := runCLI(t, "--region", "help")

	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if !strings.HasPrefix(stdout, "Available LoRa regions:\n") {
		t.Errorf("listing does not start with the heading\ngot:\n%s", stdout)
	}
	for _, line := range []string{
		"  US: North America - 915 MHz ISM Band",
		"  EU_868: Europe - 868 MHz ISM Band",
		"  UA_433: Ukraine - 433 MHz Band",
	} {
		if !strings.Contains(stdout, line) {
			t.Errorf("listing is missing %q", line)
		}
	}
}

func TestRunUnknownRegion(t *testing.T) {
	code, stdout, stderr := runCLI(t, "-r", "XX")

	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if stdout != "" {
		t.Errorf("stdout should stay empty on error, got:\n%s", stdout)
	}
	if !strings.Contains(stderr, "Error: Invalid region 'XX' specified.") {
		t.Errorf("stderr is missing the error line\ngot:\n%s", stderr)
	}
	if !strings.Contains(stderr, "Available regions:") || !strings.Contains(stderr, "  JP: Japan - 920 MHz Band") {
		t.Errorf("stderr is missing the region listing\ngot:\n%s", stderr)
	}
}

func TestRunNegativeBandwidth(t *testing.T) {
	code, _, stderr := runCLI(t, "--bandwidth=-5")

	if code != 1 {
		t.Fatalf("exit code = %d, want 1 (stderr: %s)", code, stderr)
	}
	if !strings.Contains(stderr, "invalid bandwidth") {
		t.Errorf("stderr = %q, want an invalid bandwidth error", stderr)
	}
}

func TestRunOversizedBandwidth(t *testing.T) {
	code, _, stderr := runCLI(t, "--bandwidth=30000")

	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr, "Error:") {
		t.Errorf("stderr = %q, want an error about the band fitting no slot", stderr)
	}
}

func TestRunVersion(t *testing.T) {
	code, stdout, _ := runCLI(t, "--version")

	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if stdout != "meshfreq "+version+"\n" {
		t.Errorf("version output = %q, want %q", stdout, "meshfreq "+version+"\n")
	}
}

func TestRunPresets(t *testing.T) {
	code, stdout, stderr := runCLI(t, "-r", "EU_433", "-p")

	if code != 0 {
		t.Fatalf("exit code = %d, want 0 (stderr: %s)", code, stderr)
	}
	if !strings.Contains(stdout, "Region: EU_433 (Europe - 433 MHz ISM Band)") {
		t.Errorf("plan header missing\ngot:\n%s", stdout)
	}
	// All eight presets appear, with the stock EU_433 defaults on their rows.
	for _, want := range []string{"ShortTurbo", "ShortFast", "ShortSlow", "MediumFast", "MediumSlow", "LongFast", "LongMod", "LongSlow"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("plan is missing the %s row\ngot:\n%s", want, stdout)
		}
	}
	if !strings.Contains(stdout, "434.375") {
		t.Errorf("plan is missing the LongFast frequency 434.375\ngot:\n%s", stdout)
	}
	if !strings.Contains(stdout, "434.5625") {
		t.Errorf("plan is missing the LongSlow frequency 434.5625\ngot:\n%s", stdout)
	}
}

func TestRunUnknownFlag(t *testing.T) {
	code, _, stderr := runCLI(t, "--no-such-flag")

	if code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
	if stderr == "" {
		t.Error("stderr should carry the flag error and usage")
	}
}
