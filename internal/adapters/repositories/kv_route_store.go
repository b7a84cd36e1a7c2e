package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"map-route-service/internal/domain"
	"map-route-service/internal/platform/obs"
	"map-route-service/internal/ports"
)

// SavedRoutesKey holds the JSON array of saved route records.
const SavedRoutesKey = "savedRoutes"

// KVRouteStore keeps saved routes as one JSON array in a key-value medium.
type KVRouteStore struct {
	KV ports.KeyValueStore
}

func NewKVRouteStore(kv ports.KeyValueStore) *KVRouteStore {
	return &KVRouteStore{KV: kv}
}

// Save appends the route's record to the array in one atomic update.
func (s *KVRouteStore) Save(ctx context.Context, route domain.Route) (err error) {
	defer obs.Time(ctx, "routes.kv.Save")(&err)

	rec := route.Record()
	err = s.KV.Update(ctx, SavedRoutesKey, func(current string, ok bool) (string, error) {
		records, err := decodeRecords(current, ok)
		if err != nil {
			return "", err
		}
		records = append(records, rec)

		out, err := json.Marshal(records)
		if err != nil {
			return "", fmt.Errorf("encode saved routes: %w", err)
		}
		return string(out), nil
	})
	if err != nil {
		return fmt.Errorf("save route: %w", err)
	}
	return nil
}

func (s *KVRouteStore) ListAll(ctx context.Context) (_ []domain.Route, err error) {
	defer obs.Time(ctx, "routes.kv.ListAll")(&err)

	current, ok, err := s.KV.Get(ctx, SavedRoutesKey)
	if err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}

	records, err := decodeRecords(current, ok)
	if err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}

	routes := make([]domain.Route, 0, len(records))
	for i, rec := range records {
		r, err := domain.RouteFromRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("list routes: entry %d: %w", i, err)
		}
		routes = append(routes, r)
	}
	return routes, nil
}

func decodeRecords(current string, ok bool) ([]domain.RouteRecord, error) {
	if !ok || current == "" {
		return []domain.RouteRecord{}, nil
	}
	var records []domain.RouteRecord
	if err := json.Unmarshal([]byte(current), &records); err != nil {
		return nil, fmt.Errorf("decode saved routes: %w", err)
	}
	return records, nil
}
