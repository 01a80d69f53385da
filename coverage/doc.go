// Package coverage finds the smallest radius at which a target fraction of
// all points lies within reach of at least one centroid.
//
// The search treats the coverage count as a monotone oracle over the radius
// and narrows an interval [lo, hi] with count(lo) < k <= count(hi) until it
// is shorter than the tolerance. The result is hi: an upper-bound
// approximation, within the tolerance, of the true threshold (which is always
// one of the finite centroid-point distances).
package coverage
