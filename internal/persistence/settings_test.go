package persistence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/grimholt/townshard/internal/township"
)

func TestSettingsRoundTrip(t *testing.T) {
	root := t.TempDir()

	want := township.DefaultSettings()
	want.BaseFee = 175
	want.ExtendedFee = 400
	want.GuildHousePercentage = 0.5
	want.ActivityThresholds = [4]int{10, 20, 40, 60}
	want.InitialFundingFee = 25_000

	if err := SaveSettings(root, want); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, SettingsFileName)); err != nil {
		t.Fatalf("settings file missing: %v", err)
	}

	got, err := LoadSettings(root)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if got.BaseFee != 175 || got.ExtendedFee != 400 {
		t.Fatalf("fees = %d/%d", got.BaseFee, got.ExtendedFee)
	}
	if got.GuildHousePercentage != 0.5 {
		t.Fatalf("GuildHousePercentage = %v", got.GuildHousePercentage)
	}
	if got.ActivityThresholds != want.ActivityThresholds {
		t.Fatalf("ActivityThresholds = %v", got.ActivityThresholds)
	}
	if got.FeeActivityModifier != want.FeeActivityModifier {
		t.Fatalf("FeeActivityModifier = %v", got.FeeActivityModifier)
	}
	if got.InitialFundingFee != 25_000 {
		t.Fatalf("InitialFundingFee = %d", got.InitialFundingFee)
	}
}

func TestLoadSettingsMissingFileYieldsDefaults(t *testing.T) {
	got, err := LoadSettings(t.TempDir())
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	want := township.DefaultSettings()
	if got.BaseFee != want.BaseFee || got.InitialFundingFee != want.InitialFundingFee {
		t.Fatalf("defaults not returned: %+v", got)
	}
}

func TestLoadSettingsRejectsCorruptFile(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, SettingsFileName), []byte{1, 2, 3}, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadSettings(root); err == nil {
		t.Fatal("LoadSettings accepted a corrupt file")
	}
}
