// Package render lays out data bundles into grayscale frames.
//
// Text uses the fixed 7x13 bitmap face from golang.org/x/image so frames
// render identically on every host. Wallpapers are read from a directory,
// converted to grayscale and scaled to fit the panel.
package render
