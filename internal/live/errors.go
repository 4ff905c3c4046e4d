package live

import (
	"fmt"
	"strconv"
	"strings"
)

func errUnknownAction(action string) error {
	return fmt.Errorf("unknown action %q", action)
}

func atoiOr(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
