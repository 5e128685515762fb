// Package jellyfin asks a Jellyfin server to rescan its libraries so newly
// written posters show up without waiting for the scheduled scan.
//
// NewConfiguredService returns a no-op refresher unless Jellyfin is enabled
// with both a URL and an API key.
package jellyfin
