package evaluator

import (
	"fmt"
	"strings"

	"github.com/lyraproj/invocat/ast"
	"github.com/lyraproj/issue/issue"
)

// LanguageVersion is the version of the Invocat language implemented by this package
const LanguageVersion = `1.0.0`

// DefaultMaxDepth is the default limit for nested pool dereferences
const DefaultMaxDepth = 1000

// Evaluator evaluates expressions against an environment. All random choices are
// made from the Random given at construction. An Evaluator is not safe for
// concurrent use.
type Evaluator struct {
	random   Random
	logger   Logger
	maxDepth int
	depth    int
}

// NewEvaluator returns an Evaluator that makes its choices from an entropy seeded stream
func NewEvaluator() *Evaluator {
	return NewEvaluatorWithRandom(NewRandom())
}

// NewSeededEvaluator returns an Evaluator whose choices are determined by the given
// seed. The empty seed is silently replaced by DefaultSeed.
func NewSeededEvaluator(seed string) *Evaluator {
	return NewEvaluatorWithRandom(NewSeededRandom(seed))
}

func NewEvaluatorWithRandom(random Random) *Evaluator {
	return &Evaluator{random: random, logger: NewDiscardLogger(), maxDepth: DefaultMaxDepth}
}

// SetLogger changes the logger that receives informational messages, such as references
// to pools that don't exist. A nil logger discards them.
func (e *Evaluator) SetLogger(logger Logger) {
	if logger == nil {
		logger = NewDiscardLogger()
	}
	e.logger = logger
}

// SetMaxDepth changes the limit for nested pool dereferences, i.e. how deep a chain of
// Reference and Draw expressions evaluated from pool members may go. A value <= 0
// disables the limit.
func (e *Evaluator) SetMaxDepth(maxDepth int) {
	e.maxDepth = maxDepth
}

// Eval evaluates expr against env and returns the resulting environment and value. The
// given environment is never modified. If the evaluation fails, the given environment is
// returned together with an issue.Reported error.
func (e *Evaluator) Eval(expr ast.Expression, env *ast.Environment) (result *ast.Environment, value Value, err error) {
	if env == nil {
		env = ast.NewEnvironment(0)
	}
	defer func() {
		if r := recover(); r != nil {
			ri, ok := r.(issue.Reported)
			if !ok {
				panic(r)
			}
			e.depth = 0
			result, value, err = env, None, ri
		}
	}()
	work := env.Copy()
	value = e.eval(expr, work)
	return work, value, nil
}

func (e *Evaluator) eval(expr ast.Expression, env *ast.Environment) Value {
	switch ex := expr.(type) {
	case *ast.Literal:
		return Some(ex.Text)
	case *ast.Mix:
		return Some(e.mix(ex, env))
	case *ast.Definition:
		env.Put(ex.Name, ex.Items)
		return None
	case *ast.EvaluatingDefinition:
		pool := make(ast.Pool, len(ex.Items))
		for i, item := range ex.Items {
			pool[i] = ast.NewLiteral(e.eval(item, env).String())
		}
		env.Put(ex.Name, pool)
		return None
	case *ast.Selection:
		if len(ex.Items) == 0 {
			env.Delete(ex.Name)
		} else {
			env.Put(ex.Name, ast.Pool{e.choose(ex.Items)})
		}
		return None
	case *ast.EvaluatingSelection:
		if len(ex.Items) == 0 {
			env.Delete(ex.Name)
		} else {
			v := e.eval(e.choose(ex.Items), env)
			env.Put(ex.Name, ast.Pool{ast.NewLiteral(v.String())})
		}
		return None
	case *ast.Reference:
		key := e.eval(ex.Name, env).String()
		pool, ok := env.Get(key)
		if !ok {
			Info(e.logger, `reference to undefined pool '%s'`, key)
			return Some(`(` + key + `)`)
		}
		return e.deref(e.choose(pool), env)
	case *ast.Draw:
		key := e.eval(ex.Name, env).String()
		pool, ok := env.Get(key)
		if !ok {
			panic(evalError(UndefinedDraw, issue.H{`name`: key}))
		}
		return e.deref(env.Remove(key, e.random.Choose(len(pool))), env)
	}
	panic(evalError(UnhandledExpression, issue.H{`expression`: fmt.Sprintf(`%T`, expr)}))
}

// mix evaluates the operands of a left folded Mix chain from left to right. The chain is
// walked iteratively so that the length of a line never counts as nesting.
func (e *Evaluator) mix(m *ast.Mix, env *ast.Environment) string {
	operands := []ast.Expression{m.Right}
	left := m.Left
	for {
		lm, ok := left.(*ast.Mix)
		if !ok {
			break
		}
		operands = append(operands, lm.Right)
		left = lm.Left
	}
	operands = append(operands, left)

	b := strings.Builder{}
	for i := len(operands) - 1; i >= 0; i-- {
		b.WriteString(e.eval(operands[i], env).String())
	}
	return b.String()
}

// deref evaluates a member taken from a pool. Only dereferences count toward the depth limit.
func (e *Evaluator) deref(member ast.Expression, env *ast.Environment) Value {
	e.depth++
	defer func() { e.depth-- }()
	if e.maxDepth > 0 && e.depth > e.maxDepth {
		panic(evalError(RecursionLimit, issue.H{`max`: e.maxDepth}))
	}
	return e.eval(member, env)
}

func (e *Evaluator) choose(items []ast.Expression) ast.Expression {
	return items[e.random.Choose(len(items))]
}
