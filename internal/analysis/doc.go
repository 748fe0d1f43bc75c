// Package analysis derives per-vehicle views from a flat collection of monthly
// records: load efficiency, anomalies, trends, model benchmarks, consistency
// and the month-by-vehicle heatmap.
//
// Every function is pure. It reads its input without modifying it and
// rebuilds its result from scratch on each call, so the same input always
// yields the same output. Ratios with an empty or zero denominator are 0, never
// NaN. Ties in every ordering keep the first-seen order of the vehicles.
package analysis
