// internal/service/offer/infrastructure/rule/cel_engine.go
package rule

import (
	"sync"

	"github.com/google/cel-go/cel"
	pkgerrors "github.com/pkg/errors"

	"foodsy/internal/service/offer/domain"
)

// CELRuleEngine 是 domain.RuleEngine 的 cel-go 实现。
// 把第三方引擎的 API 适配到领域接口上；编译结果按表达式文本缓存。
type CELRuleEngine struct {
	env *cel.Env

	mu       sync.RWMutex
	programs map[string]cel.Program
}

// NewCELRuleEngine 创建规则引擎，声明规则可见的变量。
func NewCELRuleEngine() (*CELRuleEngine, error) {
	env, err := cel.NewEnv(
		cel.Variable("subtotal", cel.IntType),
		cel.Variable("itemCount", cel.IntType),
	)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "create cel environment")
	}
	return &CELRuleEngine{
		env:      env,
		programs: make(map[string]cel.Program),
	}, nil
}

// Compile 实现 domain.RuleEngine。表达式必须能编译且结果为 bool 类型。
func (e *CELRuleEngine) Compile(ruleExpr string) error {
	if ruleExpr == "" {
		return nil // 空规则表示无条件可用
	}
	_, err := e.program(ruleExpr)
	return err
}

// Evaluate 实现 domain.RuleEngine。
func (e *CELRuleEngine) Evaluate(ruleExpr string, input domain.EligibilityInput) (bool, error) {
	if ruleExpr == "" {
		return true, nil
	}
	prg, err := e.program(ruleExpr)
	if err != nil {
		return false, err
	}
	out, _, err := prg.Eval(map[string]interface{}{
		"subtotal":  input.SubtotalPaise,
		"itemCount": int64(input.ItemCount),
	})
	if err != nil {
		return false, pkgerrors.Wrapf(err, "evaluate rule %q", ruleExpr)
	}
	ok, isBool := out.Value().(bool)
	if !isBool {
		return false, pkgerrors.Wrapf(domain.ErrInvalidRule, "rule %q is not boolean", ruleExpr)
	}
	return ok, nil
}

func (e *CELRuleEngine) program(ruleExpr string) (cel.Program, error) {
	e.mu.RLock()
	prg, ok := e.programs[ruleExpr]
	e.mu.RUnlock()
	if ok {
		return prg, nil
	}

	ast, issues := e.env.Compile(ruleExpr)
	if issues != nil && issues.Err() != nil {
		return nil, pkgerrors.Wrapf(domain.ErrInvalidRule, "%s", issues.Err())
	}
	if ast.OutputType() != cel.BoolType {
		return nil, pkgerrors.Wrapf(domain.ErrInvalidRule, "rule %q must evaluate to bool", ruleExpr)
	}
	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, pkgerrors.Wrapf(domain.ErrInvalidRule, "%s", err)
	}

	e.mu.Lock()
	e.programs[ruleExpr] = prg
	e.mu.Unlock()
	return prg, nil
}
