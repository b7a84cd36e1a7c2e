package repositories

import (
	"context"
	"map-route-service/internal/platform/db"
	"os"
	"testing"
)

// Runs against a real Postgres when DATABASE_URL is set. Rows already in
// saved_routes are left alone; only the appended tail is checked.
func TestSQLRouteStoreSaveAndList(t *testing.T) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		t.Skip("DATABASE_URL not set")
	}
	ctx := context.Background()

	conn, err := db.Open(databaseURL)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	defer conn.Close()

	if err := InitPostgresSchema(conn); err != nil {
		t.Fatalf("init schema: %v", err)
	}

	store := NewSQLRouteStore(conn)
	before, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	want := sampleRoutes()
	for _, r := range want {
		if err := store.Save(ctx, r); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	got, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != len(before)+len(want) {
		t.Fatalf("len(routes) = %d, want %d", len(got), len(before)+len(want))
	}

	tail := got[len(before):]
	for i := range want {
		g, w := tail[i].Record(), want[i].Record()
		if g.Distance != w.Distance || g.Time != w.Time || g.Timestamp != w.Timestamp {
			t.Fatalf("route %d = %+v, want %+v", i, g, w)
		}
		if len(g.Coordinates) != len(w.Coordinates) {
			t.Fatalf("route %d has %d points, want %d", i, len(g.Coordinates), len(w.Coordinates))
		}
	}
}

func TestSQLRouteStoreNilDB(t *testing.T) {
	store := NewSQLRouteStore(nil)
	if err := store.Save(context.Background(), sampleRoutes()[0]); err == nil {
		t.Fatalf("expected error for nil DB")
	}
	if _, err := store.ListAll(context.Background()); err == nil {
		t.Fatalf("expected error for nil DB")
	}
}
