// Package shelfwatch exposes module-level metadata.
package shelfwatch

// Version is the current shelfwatch release.
const Version = "0.2.0"
