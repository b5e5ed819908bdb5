// internal/service/offer/domain/rule.go
package domain

// EligibilityInput 是规则评估时可见的事实。
type EligibilityInput struct {
	SubtotalPaise int64
	ItemCount     int
}

// RuleEngine 是领域层与具体规则引擎之间的“插座”。
// Compile 在保存优惠时校验表达式；Evaluate 在结算时判断是否可用。
type RuleEngine interface {
	Compile(rule string) error
	Evaluate(rule string, input EligibilityInput) (bool, error)
}
