package generator

import (
	"strconv"
	"strings"
)

func itoa(i int) string { return strconv.Itoa(i) }

// splitName splits "First Last" at the first space; last names may contain spaces.
func splitName(name string) (string, string) {
	first, last, _ := strings.Cut(name, " ")
	return first, last
}
