// Package textutil normalizes media directory names into searchable titles.
package textutil
