package interpreter

import (
	"github.com/lyraproj/invocat/ast"
	"github.com/lyraproj/invocat/evaluator"
	"github.com/lyraproj/invocat/parser"
	"github.com/lyraproj/invocat/settings"
	"github.com/lyraproj/issue/issue"
	"gopkg.in/yaml.v2"
)

// Interpreter evaluates documents statement by statement. Pools defined by one call
// to Eval remain available to all later calls on the same Interpreter. An Interpreter
// is not safe for concurrent use; callers must serialize access.
type Interpreter struct {
	evaluator *evaluator.Evaluator
	env       *ast.Environment
	logger    evaluator.Logger
	issues    []issue.Reported
}

// New returns an Interpreter whose random choices are seeded from entropy. A nil
// logger discards all log output.
func New(logger evaluator.Logger) *Interpreter {
	return newInterpreter(evaluator.NewEvaluator(), logger)
}

// NewSeeded returns an Interpreter that makes reproducible choices determined by the
// given seed. The empty seed is replaced by evaluator.DefaultSeed.
func NewSeeded(seed string, logger evaluator.Logger) *Interpreter {
	return newInterpreter(evaluator.NewSeededEvaluator(seed), logger)
}

// NewFromSettings returns an Interpreter configured by the given settings. A nil
// logger is replaced by a standard logger using the configured log level.
func NewFromSettings(s *settings.Settings, logger evaluator.Logger) *Interpreter {
	if logger == nil {
		logger = s.Logger()
	}
	var ev *evaluator.Evaluator
	if s.Seed != nil {
		ev = evaluator.NewSeededEvaluator(*s.Seed)
	} else {
		ev = evaluator.NewEvaluator()
	}
	ev.SetMaxDepth(s.MaxDepth)
	return newInterpreter(ev, logger)
}

func newInterpreter(ev *evaluator.Evaluator, logger evaluator.Logger) *Interpreter {
	if logger == nil {
		logger = evaluator.NewDiscardLogger()
	}
	ev.SetLogger(logger)
	return &Interpreter{evaluator: ev, env: ast.NewEnvironment(16), logger: logger}
}

// Eval evaluates all statements of the given document in order and returns the values
// produced by the statements that are not bindings. A nil result means that nothing
// was produced. Statements with syntax errors are logged and skipped. An evaluation
// error stops the evaluation of the document. The failing statement has no effect and
// the values produced before it are returned together with the error.
func (i *Interpreter) Eval(text string) ([]string, error) {
	return i.EvalFile(``, text)
}

// EvalFile is like Eval but uses the given file name in the location of syntax errors
func (i *Interpreter) EvalFile(file, text string) ([]string, error) {
	var output []string
	stmts := parser.ParseString(file, text)
	i.issues = parser.Issues(stmts)
	for _, ri := range i.issues {
		i.logger.LogIssue(ri)
	}

	exprs := parser.Expressions(stmts)
	for _, expr := range exprs {
		env, v, evalErr := i.evaluator.Eval(expr, i.env)
		if evalErr != nil {
			return output, evalErr
		}
		i.env = env
		if !v.IsNone() {
			output = append(output, v.String())
		}
	}
	evaluator.Debug(i.logger, `evaluated %d statements, skipped %d, produced %d values`, len(exprs), len(i.issues), len(output))
	return output, nil
}

// Issues returns the syntax errors found by the most recent call to Eval or EvalFile
func (i *Interpreter) Issues() []issue.Reported {
	return i.issues
}

// Environment returns a copy of the current environment
func (i *Interpreter) Environment() *ast.Environment {
	return i.env.Copy()
}

// Dump renders the current environment as YAML. Each pool name maps to the list of
// its members rendered as Invocat source, in the order the names were first defined.
func (i *Interpreter) Dump() ([]byte, error) {
	ms := make(yaml.MapSlice, 0, i.env.Len())
	i.env.EachPair(func(key string, pool ast.Pool) {
		items := make([]string, len(pool))
		for n, item := range pool {
			items[n] = item.String()
		}
		ms = append(ms, yaml.MapItem{Key: key, Value: items})
	})
	return yaml.Marshal(ms)
}
