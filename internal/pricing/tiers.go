package pricing

// TierRule is a named discount rule within a role module. At most one rule
// per module is flagged as the default.
type TierRule struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Default bool         `json:"default"`
	Rule    DiscountRule `json:"rule"`
}

// RoleModule groups the discount rules available to one sales role
// (designer, franchise, ...).
type RoleModule struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	DiscountRules []TierRule `json:"discountRules"`
}

// TierSystem is a manufacturer's full tier configuration.
type TierSystem struct {
	RoleModules []RoleModule `json:"roleModules"`
}

// Assignment records which role module and, optionally, which specific rule
// a user has been given.
type Assignment struct {
	RoleModuleID   string `json:"roleModuleId"`
	DiscountRuleID string `json:"discountRuleId"`
}

// ruleStrategy attempts one way of picking an effective rule from a role
// module. Strategies are tried in a fixed order so the fallback chain stays
// auditable and testable in isolation.
type ruleStrategy func(module *RoleModule, asg *Assignment) (*DiscountRule, bool)

var ruleStrategies = []ruleStrategy{
	assignedRule,
	defaultFlaggedRule,
	firstAvailableRule,
}

// EffectiveRule resolves the discount rule a given user actually sees:
// explicit user assignment, then the role module's default-flagged rule,
// then the first available rule. Returns nil when nothing resolves; callers
// fall back to package defaults via QuoteSku.
func EffectiveRule(sys *TierSystem, asg *Assignment) *DiscountRule {
	module := resolveRoleModule(sys, asg)
	if module == nil {
		return nil
	}
	for _, strategy := range ruleStrategies {
		if rule, ok := strategy(module, asg); ok {
			return rule
		}
	}
	return nil
}

// resolveRoleModule picks the user's assigned role module, falling back to
// the first module when the assignment is absent or stale.
func resolveRoleModule(sys *TierSystem, asg *Assignment) *RoleModule {
	if sys == nil || len(sys.RoleModules) == 0 {
		return nil
	}
	if asg != nil && asg.RoleModuleID != "" {
		for i := range sys.RoleModules {
			if sys.RoleModules[i].ID == asg.RoleModuleID {
				return &sys.RoleModules[i]
			}
		}
	}
	return &sys.RoleModules[0]
}

func assignedRule(module *RoleModule, asg *Assignment) (*DiscountRule, bool) {
	if asg == nil || asg.DiscountRuleID == "" {
		return nil, false
	}
	for i := range module.DiscountRules {
		if module.DiscountRules[i].ID == asg.DiscountRuleID {
			return &module.DiscountRules[i].Rule, true
		}
	}
	return nil, false
}

func defaultFlaggedRule(module *RoleModule, _ *Assignment) (*DiscountRule, bool) {
	for i := range module.DiscountRules {
		if module.DiscountRules[i].Default {
			return &module.DiscountRules[i].Rule, true
		}
	}
	return nil, false
}

func firstAvailableRule(module *RoleModule, _ *Assignment) (*DiscountRule, bool) {
	if len(module.DiscountRules) == 0 {
		return nil, false
	}
	return &module.DiscountRules[0].Rule, true
}
