// Package engine answers multi-centroid radius queries on top of an index.
//
// MatchAny searches every centroid and unions the hits by point ID, so a point
// reached by several centroids is reported once. With more than one centroid
// the searches fan out over an errgroup; each worker fills its own bitmap and
// the partial sets are merged with a single roaring FastOr.
//
// An optional resource.Controller caps the number of centroid searches that run
// at the same time across every engine sharing it.
package engine
