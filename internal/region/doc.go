// Package region rasterizes user-drawn selections into boolean masks
// over a dataset's collection plane.
//
// Supported selection types are rectangle, ellipse, point and polygon.
// Coordinates are in collection-plane pixels with (0,0) at the top-left
// corner, X increasing rightward and Y increasing downward. Rectangle
// bounds follow the usual convention: (x1,y1) inclusive, (x2,y2)
// exclusive. Ellipses and polygons are sampled at pixel centers.
//
// A selection partly or wholly outside the plane simply selects fewer
// (possibly zero) pixels; it is not an error. Downstream, an empty
// combined mask means "sum the whole frame".
package region
