package events

import (
	"context"
	"encoding/json"
	"errors"
	"map-route-service/internal/domain"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisherWritesEvent(t *testing.T) {
	w := &recordingWriter{}
	p := newKafkaPublisher(w, "routes", nil)

	route := domain.Route{
		Points:      []domain.GeoPoint{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}},
		Measurement: domain.Measurement{DistanceKm: 111.19, EstimatedTimeMin: 1334},
		CreatedAt:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	evt := domain.NewRouteSavedEvent(route, time.Date(2024, 5, 1, 12, 0, 1, 0, time.UTC))

	require.NoError(t, p.PublishRouteSaved(context.Background(), evt))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, evt.ID.String(), string(msg.Key))
	assert.Equal(t, domain.EventRouteSaved, string(msg.Headers[0].Value))

	var decoded domain.RouteSavedEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, evt.ID, decoded.ID)
	assert.Equal(t, "111.19 km", decoded.Route.Distance)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisherWriteError(t *testing.T) {
	w := &recordingWriter{err: errors.New("no brokers")}
	p := newKafkaPublisher(w, "routes", nil)

	err := p.PublishRouteSaved(context.Background(), domain.NewRouteSavedEvent(domain.Route{}, time.Now()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no brokers")
}
