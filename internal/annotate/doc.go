// Package annotate finds closed shapes in an image and labels each one with
// its color and shape.
//
// A Pipeline drives the whole image: it converts a copy of the source to
// grayscale, blurs it, detects edges, extracts contours and approximates each
// contour with a polygon. Each region is then handed to an Annotator, which
// samples the region's mean color, classifies it and draws an expanded
// bounding box and a "{Color} {Shape}" label onto the copy.
//
// Two contours flow through the Annotator for every region: the boundary as
// the contour extractor reported it, used for the color mask, and the
// simplified polygon, whose vertex count names the shape.
//
// Regions with fewer than three boundary points or polygon vertices are
// skipped without error and counted in Result.Skipped.
//
// The pixel work is delegated to a vision.Backend. A Pipeline keeps no state
// between calls; every intermediate buffer is allocated per call, so one
// Pipeline may process several images concurrently.
package annotate
