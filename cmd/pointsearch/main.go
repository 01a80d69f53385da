// Command pointsearch counts or lists the points that lie within a radius of
// any of a set of centroids, or finds the radius that covers a target
// percentage of the points.
//
//	pointsearch -radius 2.5 points.csv centroids.csv
//	pointsearch -target-percent 40 -list-points s3://bucket/points.csv.zst centroids.csv
//
// Exit codes: 1 usage, 2 input, 3 query or output.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := run(ctx, os.Args[1:], environment{
		stdout: os.Stdout,
		stderr: os.Stderr,
	})

	stop()
	os.Exit(code)
}
