// Package render turns 2D maps and masks into base64-encoded PNG
// previews.
//
// Map values are normalized to their min/max range and passed through a
// perceptual colormap (keypoint gradients blended in Lab space). The
// numeric data is never altered: smoothing and scaling apply to the
// rendered preview only.
package render
