// Package perm implements exact permutation-space arithmetic and lazy
// lexicographic enumeration of index permutations. Ranks and space sizes are
// big integers throughout: the permutation count of a combined sample grows
// factorially and exceeds a machine word already at 21 observations.
package perm
