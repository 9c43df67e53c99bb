// Package mcp exposes a Golem world server to AI agents over the Model
// Context Protocol.
//
// The Client is a thin proxy: every tool call becomes a request against the
// REST API, and the JSON answer is rendered as text for the agent. The same
// server can be served over stdio or mounted on the HTTP server at /mcp.
//
// Tools:
//   - create_session, list_sessions, get_session: session management
//   - world_state: status line and a map of base tile IDs with the player
//     (@) and trigger cells (*) marked
//   - command, bulk_command, touch, tick: drive the world
//   - load_map_set, reset_world: switch map sets or return to the start
//   - command_history: paginated command log
//   - describe_tile: base and texture tile IDs at one cell
//   - list_configs, game_instructions: discovery
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
