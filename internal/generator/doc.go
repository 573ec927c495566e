// Package generator synthesizes issue field values from fixed value pools.
//
// Every value is a pure function of a zero-based issue index and a pool, so
// the same dataset always produces the same issues. Scalar fields cycle
// through their pool with [Pick]; multi-valued fields (components, labels)
// use [PickNoneOrMultiple], which periodically leaves the field empty and
// periodically adds a second entry.
package generator
