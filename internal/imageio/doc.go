// Package imageio loads, encodes and crops images for the annotator.
//
// Decoding goes through disintegration/imaging, which understands PNG, JPEG,
// GIF, BMP and TIFF and applies EXIF orientation to JPEG files so the pixels
// match what an image viewer shows.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner. For
// regions, (x1,y1) is inclusive and (x2,y2) is exclusive.
//
// # Thread Safety
//
// Cache is safe for concurrent use. The other functions are stateless.
package imageio
