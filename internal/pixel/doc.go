// Package pixel provides the paintable state of an animation frame.
//
// The package defines the value types every other layer builds on:
//
//   - [Color]: non-premultiplied RGBA with 8 bits per channel
//   - [Coord]: an unbounded integer grid position
//   - [Canvas]: a sparse map from Coord to Color
//   - [Source]: the read-only view renderers and exporters consume
//
// # Example
//
//	c := pixel.NewCanvas()
//	c.Set(pixel.Coord{X: 3, Y: 4}, pixel.RGB(255, 0, 0))
//	for _, cell := range c.Cells() {
//		fmt.Println(cell.At, cell.Color.Hex())
//	}
//
// # Thread Safety
//
// Canvas instances are NOT thread-safe for writes. Concurrent readers are
// fine as long as nothing mutates the canvas meanwhile.
package pixel
