// Package artwork downloads poster images and builds seeded placeholder URLs
// for titles no metadata provider knows.
package artwork
