// Package api provides the read-only HTTP status API for shard operators.
// All endpoints are GET; the shard is mutated only through in-game commands.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/grimholt/townshard/internal/engine"
	"github.com/grimholt/townshard/internal/township"
	"github.com/grimholt/townshard/internal/world"
)

// Server serves shard state over HTTP.
type Server struct {
	Shard *engine.Shard
	Eng   *engine.Engine
	Port  int
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	limiter := NewRateLimiter(600, time.Minute)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/townships", RateLimitMiddleware(limiter, s.handleTownships))
	mux.HandleFunc("/api/v1/township/", RateLimitMiddleware(limiter, s.handleTownshipDetail))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr)

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"name":       "Townshard",
		"facet":      s.Shard.Facet.Name,
		"tick":       s.Shard.CurrentTick(),
		"shard_time": engine.ShardTime(s.Shard.CurrentTick()),
		"speed":      s.Eng.Speed,
		"running":    s.Eng.Running,
		"townships":  len(s.Shard.Townships.All()),
		"houses":     len(s.Shard.Houses.All()),
		"guilds":     len(s.Shard.Guilds.All()),
	}
	writeJSON(w, status)
}

// townshipSummary is the list-view projection of one stone.
type townshipSummary struct {
	Serial    uint64 `json:"serial"`
	GuildID   uint64 `json:"guild_id"`
	Center    string `json:"center"`
	Radius    int    `json:"radius"`
	GoldHeld  int    `json:"gold_held"`
	Activity  string `json:"activity"`
	LawLevel  string `json:"law_level"`
	PackedUp  bool   `json:"packed_up"`
	Visitors  int    `json:"visitors_this_week"`
	DailyFee  int    `json:"daily_fee"`
	NPCs      int    `json:"npcs"`
	Lockdowns int    `json:"lockdowns"`
}

// summarize projects one stone. Callers hold the stone's lock: the engine
// mutates stones on its own goroutine.
func summarize(stone *township.Stone) townshipSummary {
	return townshipSummary{
		Serial:    uint64(stone.Serial()),
		GuildID:   uint64(stone.GuildID),
		Center:    stone.Center.String(),
		Radius:    stone.Radius(),
		GoldHeld:  stone.GoldHeld(),
		Activity:  township.ActivityName(stone.ActivityLevel()),
		LawLevel:  township.LawName(stone.LawLevel),
		PackedUp:  stone.PackedUp(),
		Visitors:  stone.VisitorsThisWeek(),
		DailyFee:  stone.GetTotalFeePerDay(false),
		NPCs:      len(stone.NPCs()),
		Lockdowns: len(stone.Lockdowns()),
	}
}

func (s *Server) handleTownships(w http.ResponseWriter, r *http.Request) {
	stones := s.Shard.Townships.All()
	out := make([]townshipSummary, 0, len(stones))
	for _, stone := range stones {
		stone.Lock()
		out = append(out, summarize(stone))
		stone.Unlock()
	}
	writeJSON(w, out)
}

func (s *Server) handleTownshipDetail(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimPrefix(r.URL.Path, "/api/v1/township/")
	serial, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		http.Error(w, "bad serial", http.StatusBadRequest)
		return
	}

	stone := s.Shard.Townships.Find(world.Serial(serial))
	if stone == nil {
		http.Error(w, "township not found", http.StatusNotFound)
		return
	}

	stone.Lock()
	detail := map[string]any{
		"summary":          summarize(stone),
		"last_actual":      township.ActivityName(stone.LastActualActivityLevel()),
		"weeks_at_level":   stone.WeeksAtLevel(),
		"tax_subsidy":      stone.TaxSubsidy,
		"fame_subsidy":     stone.FameSubsidy,
		"fee_breakdown":    stone.PreviewFeeBreakdown(),
		"deposits":         stone.Deposits(),
		"withdrawals":      stone.Withdrawals(),
		"messages":         stone.MessageLog(),
		"building_permits": len(stone.BuildingPermits),
		"enemies":          len(stone.Enemies),
	}
	stone.Unlock()
	writeJSON(w, detail)
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
