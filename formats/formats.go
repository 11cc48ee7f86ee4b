// Package formats declares the payload types that parameterize typed
// streams. They are build-time markers only: the builder never constructs
// or inspects packet payloads, it just threads their types through the DSL
// so that combinator wiring is checked at the call site. The execution
// engine that consumes the rendered config owns the actual in-memory
// representations.
package formats

// Image is a decoded video frame or picture.
type Image struct{}

// Size is the pixel size of an image, emitted by the image-properties
// calculator.
type Size struct{}

// Tensor is one inference input or output buffer. Collections of tensors
// travel as []Tensor.
type Tensor struct{}

// Detection is one detected object with its score, bounding box and
// keypoints.
type Detection struct{}

// Rect is an absolute-coordinate rotated rectangle.
type Rect struct{}

// NormalizedRect is a rotated rectangle in normalized [0,1] coordinates.
type NormalizedRect struct{}

// Landmark is one absolute-coordinate 3D point.
type Landmark struct{}

// NormalizedLandmark is one 3D point in normalized coordinates.
type NormalizedLandmark struct{}

// LandmarkList is an ordered set of absolute-coordinate landmarks.
type LandmarkList struct{}

// NormalizedLandmarkList is an ordered set of normalized landmarks.
type NormalizedLandmarkList struct{}

// JointList is an ordered set of rotational joints.
type JointList struct{}
