// Package analysis checks simulated paths against the small-angle theory.
//
//   - [DominantFrequency]: strongest frequency of a signal via FFT
//   - [FrequencyReport]: measured f_y/f_x against √(L/l)
//   - [RatioSweep]: the same check across a range of lower lengths
//   - [LyapunovExponent]: divergence of nearby orbits, near zero for a
//     regular figure
//   - [NewPhasePortrait], [PoincareSection], [Braille]: phase space views
package analysis
