package evaluator

import "github.com/lyraproj/issue/issue"

const (
	RecursionLimit      = `INVOCAT_RECURSION_LIMIT`
	UndefinedDraw       = `INVOCAT_UNDEFINED_DRAW`
	UnhandledExpression = `INVOCAT_UNHANDLED_EXPRESSION`
)

func init() {
	issue.Hard(RecursionLimit, `evaluation exceeded the maximum depth of %{max}. Pools that reference each other may never end`)

	issue.Hard(UndefinedDraw, `cannot draw from '%{name}'. No such pool exists`)

	issue.Hard(UnhandledExpression, `Evaluator cannot handle an expression of type %{expression}`)
}

func evalError(code issue.Code, args issue.H) issue.Reported {
	return issue.NewReported(code, issue.SEVERITY_ERROR, args, nil)
}
