package api

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/grimholt/townshard/internal/engine"
	"github.com/grimholt/townshard/internal/guilds"
	"github.com/grimholt/townshard/internal/housing"
	"github.com/grimholt/townshard/internal/items"
	"github.com/grimholt/townshard/internal/mobiles"
	"github.com/grimholt/townshard/internal/oplog"
	"github.com/grimholt/townshard/internal/township"
	"github.com/grimholt/townshard/internal/world"
)

func newTestServer(t *testing.T) (*Server, *township.Stone) {
	t.Helper()

	facet := world.NewMap("Avalor", 256, 256)
	leader := mobiles.NewMobile("Aria")
	guild := guilds.New("Stonewatch", "SW", leader)

	now := time.Date(2025, time.March, 3, 12, 0, 0, 0, time.UTC)
	svc := &township.Services{
		Settings: township.DefaultSettings(),
		Guilds:   guilds.NewRegistry(),
		Houses:   housing.NewIndex(),
		Registry: township.NewRegistry(),
		Log:      oplog.Discard(),
		Clock:    func() time.Time { return now },
	}
	svc.Guilds.Register(guild)

	stone := township.NewStone(svc, guild, world.Point3D{X: 128, Y: 128}, facet)
	stone.DepositGold(items.NewGold(5_000_000), "treasury")

	sh := &engine.Shard{
		Facet:     facet,
		Guilds:    svc.Guilds,
		Houses:    svc.Houses,
		Townships: svc.Registry,
		Settings:  svc.Settings,
		Services:  svc,
	}
	return &Server{Shard: sh}, stone
}

func TestHandleTownshipsListsStones(t *testing.T) {
	srv, stone := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.handleTownships(rec, httptest.NewRequest("GET", "/api/v1/townships", nil))
	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	want := fmt.Sprintf(`"serial": %d`, stone.Serial())
	if body := rec.Body.String(); !strings.Contains(body, want) {
		t.Fatalf("body missing %s:\n%s", want, body)
	}
}

func TestHandleTownshipDetailBadSerial(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.handleTownshipDetail(rec, httptest.NewRequest("GET", "/api/v1/township/bogus", nil))
	if rec.Code != 400 {
		t.Fatalf("bad serial: status = %d, want 400", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.handleTownshipDetail(rec, httptest.NewRequest("GET", "/api/v1/township/999999", nil))
	if rec.Code != 404 {
		t.Fatalf("unknown serial: status = %d, want 404", rec.Code)
	}
}

// The HTTP handlers run on their own goroutines while the engine ticks. Both
// sides must lock each stone; run with -race.
func TestHandlersSafeDuringFeeCycle(t *testing.T) {
	srv, stone := newTestServer(t)
	detailPath := fmt.Sprintf("/api/v1/township/%d", stone.Serial())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			township.DoAllTownshipFees(srv.Shard.Townships)
		}
	}()

	for i := 0; i < 200; i++ {
		rec := httptest.NewRecorder()
		srv.handleTownships(rec, httptest.NewRequest("GET", "/api/v1/townships", nil))
		if rec.Code != 200 {
			t.Fatalf("list: status = %d", rec.Code)
		}

		rec = httptest.NewRecorder()
		srv.handleTownshipDetail(rec, httptest.NewRequest("GET", detailPath, nil))
		if rec.Code != 200 {
			t.Fatalf("detail: status = %d", rec.Code)
		}
	}
	wg.Wait()

	if stone.Deleted() {
		t.Fatal("funded township deleted by the fee cycle")
	}
}
