package main

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/hupe1980/pointsearch/blobstore"
	"github.com/hupe1980/pointsearch/pointio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	pointsCSV    = "X,Y\n0,0\n1,0\n0,1\n10,10\n10,11\n"
	centroidsCSV = "X,Y\n0,0\n10,10\n"
)

type harness struct {
	mem    *blobstore.MemoryStore
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func newHarness(t *testing.T, files map[string]string) *harness {
	t.Helper()
	h := &harness{mem: blobstore.NewMemoryStore()}
	for name, data := range files {
		require.NoError(t, pointio.Save(context.Background(), h.mem, name, []byte(data), nil))
	}
	return h
}

func (h *harness) run(args ...string) int {
	h.stdout.Reset()
	h.stderr.Reset()
	return run(context.Background(), append([]string{"-log-level", "error"}, args...), environment{
		stdout: &h.stdout,
		stderr: &h.stderr,
		memory: h.mem,
	})
}

func defaultFiles() map[string]string {
	return map[string]string{
		"points.csv":    pointsCSV,
		"centroids.csv": centroidsCSV,
		"origin.csv":    "X,Y\n0,0\n",
	}
}

func TestRadiusCount(t *testing.T) {
	h := newHarness(t, defaultFiles())

	require.Equal(t, exitOK, h.run("-radius", "1.5", "mem://points.csv", "mem://centroids.csv"), h.stderr.String())
	assert.Equal(t, "5 points within 1.500000 of the given centroids.\n", h.stdout.String())

	require.Equal(t, exitOK, h.run("-radius", "0.5", "-index", "flat", "mem://points.csv", "mem://centroids.csv"))
	assert.Equal(t, "2 points within 0.500000 of the given centroids.\n", h.stdout.String())
}

func TestDefaultRadius(t *testing.T) {
	h := newHarness(t, defaultFiles())

	require.Equal(t, exitOK, h.run("mem://points.csv", "mem://origin.csv"))
	assert.Equal(t, "3 points within 5.000000 of the given centroids.\n", h.stdout.String())
}

func TestListPoints(t *testing.T) {
	h := newHarness(t, defaultFiles())

	require.Equal(t, exitOK, h.run("-radius", "1", "-list-points", "mem://points.csv", "mem://origin.csv"))
	assert.Equal(t, "X,Y\n0.000000,0.000000\n1.000000,0.000000\n0.000000,1.000000\n", h.stdout.String())

	require.Equal(t, exitOK, h.run("-radius", "1", "-list-points", "-format", "json", "-codec", "json", "mem://points.csv", "mem://origin.csv"))
	assert.JSONEq(t, `{"count":3,"points":[{"id":0,"x":0,"y":0},{"id":1,"x":1,"y":0},{"id":2,"x":0,"y":1}]}`, h.stdout.String())
}

func TestTargetPercent(t *testing.T) {
	h := newHarness(t, defaultFiles())

	for _, strategy := range []string{"bisect", "interpolate"} {
		code := h.run("-target-percent", "60", "-tolerance", "1e-9", "-max-iter", "200", "-strategy", strategy, "mem://points.csv", "mem://origin.csv")
		require.Equal(t, exitOK, code, h.stderr.String())
		assert.Equal(t, "3 points within radius 1.000000.\n", h.stdout.String(), strategy)
	}

	require.Equal(t, exitOK, h.run("-target-percent", "60", "-tolerance", "1e-9", "-list-points", "mem://points.csv", "mem://origin.csv"))
	assert.Equal(t, 4, strings.Count(h.stdout.String(), "\n"))
}

func TestCompressedInputAndOutput(t *testing.T) {
	h := newHarness(t, map[string]string{
		"in/points.csv.zst":    pointsCSV,
		"in/centroids.csv.lz4": centroidsCSV,
	})

	code := h.run("-radius", "1.5", "-format", "json", "-io-limit", "1048576",
		"-output", "mem://out/summary.json.zst",
		"mem://in/points.csv.zst", "mem://in/centroids.csv.lz4")
	require.Equal(t, exitOK, code, h.stderr.String())
	assert.Empty(t, h.stdout.String())

	rc, err := pointio.Open(context.Background(), h.mem, "out/summary.json.zst", nil)
	require.NoError(t, err)
	defer rc.Close()
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"count":5,"radius":1.5}`, string(got))
}

func TestLocalFiles(t *testing.T) {
	dir := t.TempDir()
	store := blobstore.NewLocalStore(dir)
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "points.csv", []byte(pointsCSV)))
	require.NoError(t, store.Put(ctx, "centroids.csv", []byte(centroidsCSV)))

	h := newHarness(t, nil)
	code := h.run("-radius", "1.5", dir+"/points.csv", "file://"+dir+"/centroids.csv")
	require.Equal(t, exitOK, code, h.stderr.String())
	assert.Equal(t, "5 points within 1.500000 of the given centroids.\n", h.stdout.String())
}

func TestPlot(t *testing.T) {
	h := newHarness(t, defaultFiles())

	require.Equal(t, exitOK, h.run("-radius", "1", "-plot", "-plot-width", "20", "-plot-height", "5", "mem://points.csv", "mem://origin.csv"))
	lines := strings.Split(strings.TrimRight(h.stdout.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "3 points within 1.000000 of the given centroids.", lines[0])
	assert.Contains(t, h.stdout.String(), "+")
}

func TestMalformedRecords(t *testing.T) {
	h := newHarness(t, map[string]string{
		"points.csv":    "X,Y\n0,0\nbad,row\n1,0\n",
		"centroids.csv": "X,Y\n0,0\n",
	})

	require.Equal(t, exitOK, h.run("-radius", "1", "mem://points.csv", "mem://centroids.csv"))
	assert.Equal(t, "2 points within 1.000000 of the given centroids.\n", h.stdout.String())

	assert.Equal(t, exitInput, h.run("-strict", "mem://points.csv", "mem://centroids.csv"))
	assert.Contains(t, h.stderr.String(), "invalid record")
}

func TestNoHeader(t *testing.T) {
	h := newHarness(t, map[string]string{
		"points.csv":    "0,0\n1,0\n",
		"centroids.csv": "0,0\n",
	})

	require.Equal(t, exitOK, h.run("-no-header", "-radius", "1", "mem://points.csv", "mem://centroids.csv"))
	assert.Equal(t, "2 points within 1.000000 of the given centroids.\n", h.stdout.String())
}

func TestExitCodes(t *testing.T) {
	files := defaultFiles()
	files["empty.csv"] = "X,Y\n"
	h := newHarness(t, files)

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"NoArgs", nil, exitUsage},
		{"OneArg", []string{"mem://points.csv"}, exitUsage},
		{"UnknownFlag", []string{"-nope", "mem://points.csv", "mem://centroids.csv"}, exitUsage},
		{"BadIndex", []string{"-index", "rtree", "mem://points.csv", "mem://centroids.csv"}, exitUsage},
		{"BadStrategy", []string{"-strategy", "newton", "mem://points.csv", "mem://centroids.csv"}, exitUsage},
		{"BadFormat", []string{"-format", "xml", "mem://points.csv", "mem://centroids.csv"}, exitUsage},
		{"BadCodec", []string{"-codec", "gob", "mem://points.csv", "mem://centroids.csv"}, exitUsage},
		{"BadLogLevel", []string{"-log-level", "loud", "mem://points.csv", "mem://centroids.csv"}, exitUsage},
		{"BadPercent", []string{"-target-percent", "150", "mem://points.csv", "mem://centroids.csv"}, exitUsage},
		{"BadCapacity", []string{"-capacity", "0", "mem://points.csv", "mem://centroids.csv"}, exitUsage},
		{"BadScheme", []string{"ftp://host/points.csv", "mem://centroids.csv"}, exitUsage},
		{"MissingPoints", []string{"mem://missing.csv", "mem://centroids.csv"}, exitInput},
		{"MissingCentroids", []string{"mem://points.csv", "mem://missing.csv"}, exitInput},
		{"EmptyPoints", []string{"mem://empty.csv", "mem://centroids.csv"}, exitInput},
		{"CoverageWithoutCentroids", []string{"-target-percent", "50", "mem://points.csv", "mem://empty.csv"}, exitQuery},
		{"BadOutputScheme", []string{"-output", "ftp://x/y", "mem://points.csv", "mem://centroids.csv"}, exitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, h.run(tt.args...), h.stderr.String())
		})
	}
}

func TestHelp(t *testing.T) {
	h := newHarness(t, nil)
	assert.Equal(t, exitOK, h.run("-h"))
	assert.Contains(t, h.stderr.String(), usageLine)
	assert.Contains(t, h.stderr.String(), "-target-percent")
}

func TestCanceled(t *testing.T) {
	h := newHarness(t, defaultFiles())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	code := run(ctx, []string{"-log-level", "error", "mem://points.csv", "mem://centroids.csv"}, environment{
		stdout: &h.stdout,
		stderr: &h.stderr,
		memory: h.mem,
	})
	assert.Equal(t, exitInput, code)
}

func TestPercentTarget(t *testing.T) {
	tests := []struct {
		percent float64
		n       int
		want    int
	}{
		{7, 100, 7},
		{60, 5, 3},
		{50, 4, 2},
		{50.1, 4, 3},
		{33.3, 3, 1},
		{100, 10, 10},
		{0.001, 10, 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, percentTarget(tt.percent, tt.n), "%g%% of %d", tt.percent, tt.n)
	}
}
