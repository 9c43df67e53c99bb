// Package websocket pushes world updates to browser clients.
//
// A central Hub tracks clients per session. Each connection gets a read
// pump that only keeps the socket alive and a write pump that delivers
// queued messages and pings. Input never arrives over the socket; clients
// send touches and commands through the REST API and watch the results
// here.
//
// Messages are JSON objects, one per frame:
//
//	{"session_id": "a1b2", "event": "state_update", "world_state": {...}}
//	{"session_id": "a1b2", "event": "map_switch", "data": {"from": "world", "to": "other"}}
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//	defer hub.Stop()
//
//	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("session"))
//	})
package websocket
