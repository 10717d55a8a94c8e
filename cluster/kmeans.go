package cluster

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	maxIterations = 300
	convergeTol   = 1e-6
)

// ParameterError reports an invalid clustering parameter, such as a cluster
// count outside [1, distinct rows].
type ParameterError struct {
	Param  string
	Value  int
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("cluster: parameter %s=%d: %s", e.Param, e.Value, e.Reason)
}

// Result holds the output of one clustering run.
type Result struct {
	Labels    []int      // per-row cluster id in [0, k)
	Centroids *mat.Dense // k x d centroid matrix
	Inertia   float64    // within-cluster sum of squared distances
}

// KMeans partitions the rows of data into k clusters using Lloyd's algorithm
// with k-means++ initialization. The seed fixes the random source, making
// repeated runs on identical input deterministic.
//
// k must be a positive integer no larger than the number of distinct rows.
func KMeans(data *mat.Dense, k int, seed int64) (*Result, error) {
	if data == nil {
		return nil, &ParameterError{Param: "rows", Value: 0, Reason: "no input data"}
	}
	n, d := data.Dims()
	if k < 1 {
		return nil, &ParameterError{Param: "k", Value: k, Reason: "must be a positive integer"}
	}
	distinct := countDistinctRows(data)
	if k > distinct {
		return nil, &ParameterError{Param: "k", Value: k,
			Reason: fmt.Sprintf("exceeds the %d distinct rows available", distinct)}
	}
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			if math.IsNaN(data.At(i, j)) {
				return nil, &ParameterError{Param: "rows", Value: i, Reason: "input contains NaN"}
			}
		}
	}

	rng := rand.New(rand.NewSource(seed))
	centroids := initPlusPlus(data, k, rng)

	labels := make([]int, n)
	counts := make([]int, k)
	inertia := 0.0

	for iter := 0; iter < maxIterations; iter++ {
		// Assignment step.
		inertia = 0
		for i := range counts {
			counts[i] = 0
		}
		for i := 0; i < n; i++ {
			best, bestDist := 0, math.Inf(1)
			for c := 0; c < k; c++ {
				dist := floats.Distance(data.RawRowView(i), centroids.RawRowView(c), 2)
				if dist < bestDist {
					best, bestDist = c, dist
				}
			}
			labels[i] = best
			counts[best]++
			inertia += bestDist * bestDist
		}

		// Update step.
		next := mat.NewDense(k, d, nil)
		for i := 0; i < n; i++ {
			row := next.RawRowView(labels[i])
			floats.Add(row, data.RawRowView(i))
		}
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				// Re-seed an empty cluster with the point farthest from
				// its centroid.
				far := farthestPoint(data, centroids, labels)
				next.SetRow(c, data.RawRowView(far))
				continue
			}
			row := next.RawRowView(c)
			floats.Scale(1/float64(counts[c]), row)
		}

		shift := 0.0
		for c := 0; c < k; c++ {
			shift += floats.Distance(centroids.RawRowView(c), next.RawRowView(c), 2)
		}
		centroids = next
		if shift < convergeTol {
			break
		}
	}

	return &Result{Labels: labels, Centroids: centroids, Inertia: inertia}, nil
}

// initPlusPlus chooses k starting centroids with the k-means++ rule: the
// first uniformly at random, each subsequent one with probability
// proportional to its squared distance from the nearest chosen centroid.
func initPlusPlus(data *mat.Dense, k int, rng *rand.Rand) *mat.Dense {
	n, d := data.Dims()
	centroids := mat.NewDense(k, d, nil)
	centroids.SetRow(0, data.RawRowView(rng.Intn(n)))

	dists := make([]float64, n)
	for c := 1; c < k; c++ {
		total := 0.0
		for i := 0; i < n; i++ {
			nearest := math.Inf(1)
			for prev := 0; prev < c; prev++ {
				dist := floats.Distance(data.RawRowView(i), centroids.RawRowView(prev), 2)
				nearest = math.Min(nearest, dist*dist)
			}
			dists[i] = nearest
			total += nearest
		}
		if total == 0 {
			// All remaining points coincide with chosen centroids.
			centroids.SetRow(c, data.RawRowView(rng.Intn(n)))
			continue
		}
		target := rng.Float64() * total
		cum := 0.0
		pick := n - 1
		for i := 0; i < n; i++ {
			cum += dists[i]
			if cum >= target {
				pick = i
				break
			}
		}
		centroids.SetRow(c, data.RawRowView(pick))
	}
	return centroids
}

func farthestPoint(data, centroids *mat.Dense, labels []int) int {
	n, _ := data.Dims()
	far, farDist := 0, -1.0
	for i := 0; i < n; i++ {
		dist := floats.Distance(data.RawRowView(i), centroids.RawRowView(labels[i]), 2)
		if dist > farDist {
			far, farDist = i, dist
		}
	}
	return far
}

func countDistinctRows(data *mat.Dense) int {
	n, d := data.Dims()
	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		key := fmt.Sprintf("%v", data.RawRowView(i)[:d])
		seen[key] = true
	}
	return len(seen)
}
