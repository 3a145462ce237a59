//go:build race

package memlink

const raceEnabled = true
