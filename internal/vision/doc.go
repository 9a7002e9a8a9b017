// Package vision provides the low-level computer vision primitives the shape
// annotator is built on.
//
// The primitives mirror the small subset of an OpenCV-style toolkit the
// annotation pipeline needs: grayscale conversion, Gaussian blur, Canny edge
// detection, contour extraction, polygon approximation, arc length, minimum
// area rectangles, polygon fill, masked mean and primitive drawing.
//
// # Backends
//
// Every primitive is reached through the Backend interface. Two backends exist:
//
//   - native: pure Go, always available. Built on bild for grayscale and
//     convolution, gonum for statistics and x/image for label text.
//   - gocv: OpenCV bindings through gocv.io/x/gocv. Only compiled with the
//     "gocv" build tag since it needs a local OpenCV installation.
//
// Backends register themselves by name; use Open to resolve one:
//
//	backend, err := vision.Open("native")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//
// Rectangles follow image.Rectangle: Min is inclusive, Max is exclusive.
//
// # Channel Order
//
// Means are reported in B-G-R order (Scalar.Val1 is blue) so that thresholds
// written for OpenCV-style pipelines can be used unchanged.
package vision
