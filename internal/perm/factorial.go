package perm

import "math/big"

// Factorial returns n! as an exact big integer. Factorial of a negative n,
// 0 or 1 is 1.
func Factorial(n int) *big.Int {
	if n < 2 {
		return big.NewInt(1)
	}
	return new(big.Int).MulRange(1, int64(n))
}

// factorialTable returns [0!, 1!, ..., n!] computed incrementally.
// Used by unranking, which needs every factorial below n.
func factorialTable(n int) []*big.Int {
	table := make([]*big.Int, n+1)
	table[0] = big.NewInt(1)
	for i := 1; i <= n; i++ {
		table[i] = new(big.Int).Mul(table[i-1], big.NewInt(int64(i)))
	}
	return table
}
