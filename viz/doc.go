// Package viz renders the pipeline's chart artifacts as PNG files.
//
// The renderers consume finished tables and slices plus rendering
// parameters and never mutate their inputs. Charts are a presentation side
// effect of a run, not a data contract.
package viz
