package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"
)

type ListingsUpdatedEvent struct {
	Type      string `json:"type"`
	Source    string `json:"source"`
	Imported  int    `json:"imported"`
	Timestamp string `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

// NotifyListingsUpdated tells connected clients the candidate pool changed,
// e.g. after a catalog import, so cached recommendation views go stale.
func NotifyListingsUpdated(source string, imported int) {
	h := defaultHub.Load()
	if h == nil {
		return
	}

	evt := ListingsUpdatedEvent{
		Type:      "listings_updated",
		Source:    source,
		Imported:  imported,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Broadcast(b)
}
