// Package testsupport holds fixtures shared by package tests: temp-dir
// backed configs, stub binaries on PATH and generated poster images.
package testsupport
