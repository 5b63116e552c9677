package raster

// Point is a coordinate in either the pixel frame or the [0,1]^2 sheet frame.
type Point struct {
	X, Y float64
}

// Box is an axis-aligned bounding box.
type Box struct {
	Left, Right, Top, Bottom float64
}
