package persistence

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/grimholt/townshard/internal/persistence/codec"
	"github.com/grimholt/townshard/internal/township"
)

// SettingsFileName is the flat binary file holding the township settings
// registry, relative to the save root.
const SettingsFileName = "Township.bin"

const settingsVersion = 1

// SaveSettings writes the settings registry beneath the save root, creating
// directories as needed.
func SaveSettings(saveRoot string, s *township.Settings) error {
	if err := os.MkdirAll(saveRoot, 0o755); err != nil {
		return fmt.Errorf("create save root: %w", err)
	}

	e := codec.NewEncoder(settingsVersion, 0)
	e.WriteInt(s.BaseFee)
	e.WriteInt(s.ExtendedFee)
	e.WriteInt(s.LawlessFee)
	e.WriteInt(s.LawAuthorityFee)
	e.WriteInt(s.NoGateOutFee)
	e.WriteInt(s.NoGateInFee)
	e.WriteInt(s.NoRecallOutFee)
	e.WriteInt(s.NoRecallInFee)
	for _, m := range s.FeeActivityModifier {
		e.WriteFloat64(m)
	}
	for _, m := range s.LawFeeModifier {
		e.WriteFloat64(m)
	}
	for _, t := range s.ActivityThresholds {
		e.WriteInt(t)
	}
	for _, w := range s.ActivityWeeks {
		e.WriteInt(w)
	}
	e.WriteFloat64(s.GuildHousePercentage)
	e.WriteInt(s.NeutralHouseClearance)
	e.WriteInt(s.InitialFundingFee)

	data, err := e.Bytes()
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	path := filepath.Join(saveRoot, SettingsFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	slog.Info("township settings saved", "path", path)
	return nil
}

// LoadSettings reads the settings registry beneath the save root. A missing
// file yields the defaults, not an error.
func LoadSettings(saveRoot string) (*township.Settings, error) {
	path := filepath.Join(saveRoot, SettingsFileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Info("no township settings file, using defaults", "path", path)
		return township.DefaultSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	d, err := codec.NewDecoder(data)
	if err != nil {
		return nil, err
	}
	if d.Version() > settingsVersion {
		return nil, fmt.Errorf("settings version %d is newer than %d", d.Version(), settingsVersion)
	}

	s := township.DefaultSettings()
	s.BaseFee = d.ReadInt()
	s.ExtendedFee = d.ReadInt()
	s.LawlessFee = d.ReadInt()
	s.LawAuthorityFee = d.ReadInt()
	s.NoGateOutFee = d.ReadInt()
	s.NoGateInFee = d.ReadInt()
	s.NoRecallOutFee = d.ReadInt()
	s.NoRecallInFee = d.ReadInt()
	for i := range s.FeeActivityModifier {
		s.FeeActivityModifier[i] = d.ReadFloat64()
	}
	for i := range s.LawFeeModifier {
		s.LawFeeModifier[i] = d.ReadFloat64()
	}
	for i := range s.ActivityThresholds {
		s.ActivityThresholds[i] = d.ReadInt()
	}
	for i := range s.ActivityWeeks {
		s.ActivityWeeks[i] = d.ReadInt()
	}
	s.GuildHousePercentage = d.ReadFloat64()
	s.NeutralHouseClearance = d.ReadInt()
	s.InitialFundingFee = d.ReadInt()

	if err := d.Err(); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	return s, nil
}
