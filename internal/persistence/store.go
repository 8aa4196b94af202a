// Package persistence provides SQLite-based shard state storage plus the
// versioned binary codec for township payloads and the settings registry.
package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite"

	"github.com/grimholt/townshard/internal/township"
	"github.com/grimholt/townshard/internal/world"
)

// Store wraps a SQLite connection for shard state persistence. Township
// payloads are stored as zstd-compressed binary blobs; ledger events and
// shard metadata live in plain rows.
type Store struct {
	conn *sqlx.DB
	enc  *zstd.Encoder
	dec  *zstd.Decoder
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}

	st := &Store{conn: conn, enc: enc, dec: dec}
	if err := st.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return st, nil
}

// Close closes the database connection.
func (st *Store) Close() error {
	st.enc.Close()
	st.dec.Close()
	return st.conn.Close()
}

func (st *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS townships (
		serial INTEGER PRIMARY KEY,
		guild_id INTEGER NOT NULL,
		facet TEXT NOT NULL,
		packed_up INTEGER NOT NULL,
		gold_held INTEGER NOT NULL,
		activity INTEGER NOT NULL,
		payload BLOB NOT NULL
	);

	CREATE TABLE IF NOT EXISTS ledger_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		serial INTEGER NOT NULL,
		at INTEGER NOT NULL,
		amount INTEGER NOT NULL,
		kind TEXT NOT NULL,
		description TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS shard_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_ledger_serial ON ledger_events(serial);
	CREATE INDEX IF NOT EXISTS idx_townships_guild ON townships(guild_id);
	`
	_, err := st.conn.Exec(schema)
	return err
}

// SaveTownships writes every live township to the database (full replace).
func (st *Store) SaveTownships(stones []*township.Stone) error {
	tx, err := st.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM townships"); err != nil {
		return err
	}

	stmt, err := tx.Preparex(`INSERT INTO townships
		(serial, guild_id, facet, packed_up, gold_held, activity, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, s := range stones {
		snap := s.Snapshot()
		raw, err := EncodeStone(snap)
		if err != nil {
			return fmt.Errorf("encode township %d: %w", snap.Serial, err)
		}
		payload := st.enc.EncodeAll(raw, nil)

		packed := 0
		if snap.PackedUp {
			packed = 1
		}

		_, err = stmt.Exec(
			snap.Serial, snap.GuildID, snap.Facet, packed,
			snap.GoldHeld, snap.ActivityLevel, payload,
		)
		if err != nil {
			return fmt.Errorf("insert township %d: %w", snap.Serial, err)
		}
	}

	return tx.Commit()
}

// LoadTownships reads every stored township snapshot.
func (st *Store) LoadTownships() ([]*township.StoneSnapshot, error) {
	var rows []struct {
		Serial  uint64 `db:"serial"`
		Payload []byte `db:"payload"`
	}
	if err := st.conn.Select(&rows, "SELECT serial, payload FROM townships"); err != nil {
		return nil, err
	}

	out := make([]*township.StoneSnapshot, 0, len(rows))
	for _, row := range rows {
		raw, err := st.dec.DecodeAll(row.Payload, nil)
		if err != nil {
			return nil, fmt.Errorf("decompress township %d: %w", row.Serial, err)
		}
		snap, err := DecodeStone(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	return out, nil
}

// LedgerEvent is one durable ledger row; unlike the stone's rolling ten-entry
// ledgers, these are never trimmed.
type LedgerEvent struct {
	Serial      uint64 `db:"serial"`
	At          int64  `db:"at"`
	Amount      int    `db:"amount"`
	Kind        string `db:"kind"`
	Description string `db:"description"`
}

// AppendLedgerEvents appends durable ledger rows.
func (st *Store) AppendLedgerEvents(events []LedgerEvent) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := st.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, e := range events {
		_, err := tx.Exec(
			"INSERT INTO ledger_events (serial, at, amount, kind, description) VALUES (?, ?, ?, ?, ?)",
			e.Serial, e.At, e.Amount, e.Kind, e.Description,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// RecentLedgerEvents returns the newest N durable ledger rows for one
// township.
func (st *Store) RecentLedgerEvents(serial world.Serial, limit int) ([]LedgerEvent, error) {
	var events []LedgerEvent
	err := st.conn.Select(&events,
		"SELECT serial, at, amount, kind, description FROM ledger_events WHERE serial = ? ORDER BY id DESC LIMIT ?",
		serial, limit,
	)
	return events, err
}

// SaveMeta stores a key-value pair in shard metadata.
func (st *Store) SaveMeta(key, value string) error {
	_, err := st.conn.Exec(
		"INSERT OR REPLACE INTO shard_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value; a missing key returns an empty string.
func (st *Store) GetMeta(key string) (string, error) {
	var value string
	err := st.conn.Get(&value, "SELECT value FROM shard_meta WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}

// SaveShardState performs a full save: townships, settings file, and save
// metadata.
func (st *Store) SaveShardState(saveRoot string, settings *township.Settings, reg *township.Registry, tick int64) error {
	stones := reg.All()
	slog.Info("saving shard state", "townships", len(stones), "tick", tick)

	if err := st.SaveTownships(stones); err != nil {
		return fmt.Errorf("save townships: %w", err)
	}
	if err := SaveSettings(saveRoot, settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	if err := st.SaveMeta("last_tick", fmt.Sprintf("%d", tick)); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}

	slog.Info("shard state saved")
	return nil
}
