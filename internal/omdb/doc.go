// Package omdb is a minimal client for the Open Movie Database title lookup
// endpoint. It answers one question per call: does OMDb know a poster for
// this title as a movie (or as a series)?
//
// Lookups are rate limited per client and every failure carries a
// services marker (ErrNetwork, ErrTimeout, ErrStatus, ErrDecode) so callers
// can classify it with services.KindOf.
package omdb
