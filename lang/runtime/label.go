package runtime

import "github.com/craigahobbs/calcscript-go/lang/model"

// resolveLabels scans statements once, building a label name -> index map
// for every LabelStmt it contains. Execute and ExecuteAsync call this at most
// once per invocation (lazily, on the first jump taken), so that any number of
// jumps within one statement sequence cost a single linear scan total.
func resolveLabels(statements []model.Statement) map[string]int {
	labels := make(map[string]int)
	for i, s := range statements {
		if l, ok := s.(*model.LabelStmt); ok {
			labels[l.Name] = i
		}
	}
	return labels
}
