// Package assets serves tile images and map set files over HTTP.
//
// Routes, relative to wherever the server is mounted:
//
//	GET /tiles/{id}           tile image resolved through the tile catalog
//	GET /maps/{name}          both layers of a map set as JSON, file order
//	GET /maps/{name}/{layer}  one layer (base or texture) as map text
//	GET /files/*              any file from the asset directory
//
// Map sets are validated with the same reader the engine uses, so a map
// that fails here would fail to load in a world too.
package assets
