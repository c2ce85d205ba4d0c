package analytics

import "strings"

const ellipsis = "..."

// ShortenLabel abbreviates a product name for chart axes. The first word is
// never split unless it alone exceeds budget, in which case it is cut and
// suffixed with an ellipsis. Otherwise as much of the second word as fits is
// appended, with an ellipsis when anything was left out.
func ShortenLabel(name string, budget int) string {
	name = strings.TrimSpace(name)
	if budget <= 0 || len([]rune(name)) <= budget {
		return name
	}

	words := strings.Fields(name)
	first := []rune(words[0])
	if len(first) > budget {
		return string(first[:budget]) + ellipsis
	}
	if len(words) == 1 {
		return string(first)
	}

	second := []rune(words[1])
	room := budget - len(first) - 1
	if room <= 0 {
		return string(first) + ellipsis
	}
	if len(second) <= room {
		label := string(first) + " " + string(second)
		if len(words) > 2 {
			label += ellipsis
		}
		return label
	}
	return string(first) + " " + string(second[:room]) + ellipsis
}
