package translate

import (
	"strconv"
)

// Constants maps a length symbol to the length expression it stands for.
// Translators only read from it.
type Constants map[string]string

func (c Constants) Lookup(symbol string) (string, bool) {
	val, ok := c[symbol]
	return val, ok
}

func (c Constants) SetInt(symbol string, n int) {
	c[symbol] = strconv.Itoa(n)
}
