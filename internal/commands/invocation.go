package commands

import (
	"log"

	"github.com/slatewm/slate/internal/match"
)

// Invocation is one parsed command: the verb, the criteria scoping it,
// and the positional argument tokens.
type Invocation struct {
	Verb     string
	Criteria []Criterion
	Args     []string
}

// Criterion is one key=value pair from a command's criteria block.
type Criterion struct {
	Key   string
	Value string
}

// Dispatcher maps structured invocations onto Runner handlers. Two
// implementations exist on purpose; see the package doc.
type Dispatcher interface {
	Dispatch(inv Invocation) Reply
	Run(line []Invocation) []Reply
}

// buildMatch constructs a fresh match for one dispatch. Unknown
// criterion keys are logged and skipped, they never abort the command.
func buildMatch(criteria []Criterion, logger *log.Logger) *match.Match {
	m := &match.Match{}
	for _, cr := range criteria {
		if err := m.Add(cr.Key, cr.Value); err != nil {
			logger.Printf("warn: %v", err)
		}
	}
	return m
}
