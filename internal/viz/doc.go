// Package viz holds the drawing primitives shared by the terminal and window
// front ends:
//
//   - [Viewport]: world ⇄ screen mapping with equal aspect
//   - [Canvas]: braille dot canvas with a colour per cell
//   - [InfernoR]: the reversed inferno colour map used for paths
//   - themes and lipgloss styles for the terminal panel
package viz
