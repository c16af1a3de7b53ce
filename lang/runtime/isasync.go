package runtime

import "github.com/craigahobbs/calcscript-go/lang/model"

// IsAsync reports whether evaluating expr might require the async call
// path: it is advisory in the "never under-reports" direction, so a false
// result is a correct basis for the async evaluator to take its
// synchronous fast path. Grounded on the teacher's compiler.isConstant-style
// structural recursion over the expression tree (lang/compiler), repurposed
// from "foldable at compile time" to "requires the async call path."
func IsAsync(expr model.Expr, st *State) bool {
	switch e := expr.(type) {
	case *model.FunctionExpr:
		if e.Name != "if" {
			if callee, ok := resolveCallee(e.Name, st, false); ok && callee.IsAsync() {
				return true
			}
		}
		for _, a := range e.Args {
			if IsAsync(a, st) {
				return true
			}
		}
		return false

	case *model.BinaryExpr:
		return IsAsync(e.Left, st) || IsAsync(e.Right, st)

	case *model.UnaryExpr:
		return IsAsync(e.Expr, st)

	case *model.GroupExpr:
		return IsAsync(e.Expr, st)
	}
	return false
}
