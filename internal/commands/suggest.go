package commands

import "github.com/agnivade/levenshtein"

// verbNames is the vocabulary both dispatchers accept, kept sorted for
// stable suggestion ties.
var verbNames = []string{
	"append_layout",
	"border",
	"exec",
	"exit",
	"floating",
	"focus",
	"fullscreen",
	"kill",
	"layout",
	"mark",
	"mode",
	"move",
	"nop",
	"open",
	"reload",
	"resize",
	"restart",
	"scratchpad",
	"split",
	"workspace",
}

// Verbs returns the command vocabulary in sorted order.
func Verbs() []string {
	out := make([]string, len(verbNames))
	copy(out, verbNames)
	return out
}

// SuggestVerb returns the known verb closest to a misspelling, or ""
// when nothing is close enough to be a likely typo.
func SuggestVerb(verb string) string {
	best, bestDist := "", 3
	for _, v := range verbNames {
		if d := levenshtein.ComputeDistance(verb, v); d < bestDist {
			best, bestDist = v, d
		}
	}
	return best
}

func unknownVerb(verb string) Reply {
	if s := SuggestVerb(verb); s != "" {
		return failf("unknown command: %s (did you mean %q?)", verb, s)
	}
	return failf("unknown command: %s", verb)
}
