// Package acs parses Microsoft Agent Character (ACS v2) files and renders
// their animations frame by frame.
//
// Open reads a complete archive, including its character metadata, image
// list, animation list, and audio list. Callers then drive playback
// through a Player (see the animation subpackage) or render individual
// frames directly via Archive.RenderFrame.
//
// The package is single-threaded and non-suspending: Open loads the whole
// archive up front from an in-memory byte slice, and every subsequent
// operation is a pure function of that immutable state plus the caller's
// own playback position. The only internal mutation is a write-once
// memoization cache for decoded pixel planes.
package acs
