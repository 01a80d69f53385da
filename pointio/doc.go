// Package pointio reads point and centroid files and writes query results.
//
// Input files hold one "x,y" record per line after a header line; extra
// columns are ignored. Files may be compressed, selected by suffix:
// ".zst" (zstd) or ".lz4". Blank lines are skipped. Malformed records are
// logged and skipped unless ReadOptions.Strict is set.
package pointio
