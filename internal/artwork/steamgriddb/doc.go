// Package steamgriddb is a minimal client for the SteamGridDB v2 API: name
// autocomplete, per-game artwork listings, and image downloads. API calls
// carry the bearer token; downloads from the image CDN do not.
package steamgriddb
