// Package api provides the HTTP REST API for Golem worlds.
//
// Endpoints:
//
// Sessions:
//   - POST   /api/sessions              create a session ({"config_id": "golem"})
//   - GET    /api/sessions              list sessions (?sort=created|accessed&order=asc|desc&limit=N&map_set=NAME)
//   - GET    /api/sessions/{id}         session info with world state and config
//   - DELETE /api/sessions/{id}         delete a session
//
// Input:
//   - POST /api/sessions/{id}/touch         {"x": 80, "y": 210} in scene space
//   - POST /api/sessions/{id}/command       {"command": "up", "reset": false}
//   - POST /api/sessions/{id}/bulk-command  {"commands": ["up", "left"], "reset": false}
//   - POST /api/sessions/{id}/tick          {"count": 1}
//   - POST /api/sessions/{id}/mapset        {"map_set": "other"}
//   - POST /api/sessions/{id}/reset
//
// Inspection:
//   - GET /api/sessions/{id}/state
//   - GET /api/sessions/{id}/history  (?page=1&limit=20&order=desc)
//   - GET /api/sessions/{id}/scene    (?depth=0.1)
//
// Configuration:
//   - GET  /api/configs
//   - GET  /api/configs/{name}
//   - POST /api/configs
//
// WebSocket updates are served on /ws?session={id}. Every state change made
// through this API is broadcast to the session's clients.
//
// Errors are JSON objects of the form {"error": "..."}. Unknown sessions,
// configs and map resources answer 404; unknown commands, invalid configs
// and malformed bodies answer 400.
package api
