// Package cluster partitions observation vectors with k-means.
//
// KMeans runs Lloyd's algorithm with k-means++ initialization over a dense
// matrix of normalized indicator vectors:
//
//	result, err := cluster.KMeans(scaled, 4, 0)
//	// result.Labels[i] is the cluster of row i, in [0, k)
//
// The random source is seeded explicitly, so two runs with the same seed and
// input produce identical labels. Labels carry no meaning across runs with
// different seeds.
package cluster
