// Package mirrorcount checks that mirrored asset trees stay consistent.
//
// It walks the original tree using fastwalk for parallel discovery,
// counts the files directly inside every directory and its preview and
// thumbnail counterparts, and classifies each directory as matching,
// mismatching or missing a mirror.
package mirrorcount
