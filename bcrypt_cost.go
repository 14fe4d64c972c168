//go:build !race

package catalog

func passwordHashCost() int {
	return 14
}
