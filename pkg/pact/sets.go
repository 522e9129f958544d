package pact

import (
	"encoding/json"
	"strings"
)

// EmissionFactorDS references a secondary emission factor database.
type EmissionFactorDS struct {
	name    string
	version string
}

func NewEmissionFactorDS(name, version string) (EmissionFactorDS, error) {
	name, version = strings.TrimSpace(name), strings.TrimSpace(version)
	if name == "" {
		return EmissionFactorDS{}, missingErr("name")
	}
	if version == "" {
		return EmissionFactorDS{}, missingErr("version")
	}
	return EmissionFactorDS{name: name, version: version}, nil
}

func (e EmissionFactorDS) Name() string    { return e.name }
func (e EmissionFactorDS) Version() string { return e.version }

func (e EmissionFactorDS) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	}{e.name, e.version})
}

// EmissionFactorDSSet is an ordered set of emission factor databases.
type EmissionFactorDSSet struct {
	set orderedSet[EmissionFactorDS]
}

func NewEmissionFactorDSSet(items ...EmissionFactorDS) (EmissionFactorDSSet, error) {
	s, err := newOrderedSet(func(e EmissionFactorDS) string { return e.name + "@" + e.version }, items)
	if err != nil {
		return EmissionFactorDSSet{}, err
	}
	return EmissionFactorDSSet{set: s}, nil
}

func (s EmissionFactorDSSet) Values() []EmissionFactorDS       { return s.set.values() }
func (s EmissionFactorDSSet) Len() int                         { return s.set.len() }
func (s EmissionFactorDSSet) Contains(e EmissionFactorDS) bool { return s.set.contains(e) }
func (s EmissionFactorDSSet) MarshalJSON() ([]byte, error)     { return s.set.marshal() }

// ProductOrSectorSpecificRule names the product or sector specific rules
// applied by one operator.
type ProductOrSectorSpecificRule struct {
	operator          ProductOrSectorSpecificRuleOperator
	ruleNames         []string
	otherOperatorName string
}

// NewProductOrSectorSpecificRule requires at least one rule name.
// otherOperatorName is required when operator is Other and forbidden
// otherwise.
func NewProductOrSectorSpecificRule(operator ProductOrSectorSpecificRuleOperator, ruleNames []string, otherOperatorName string) (ProductOrSectorSpecificRule, error) {
	if _, err := ruleOperators.parse(string(operator)); err != nil {
		return ProductOrSectorSpecificRule{}, Prefix("operator", err)
	}
	if len(ruleNames) == 0 {
		return ProductOrSectorSpecificRule{}, missingErr("ruleNames")
	}
	names := make([]string, len(ruleNames))
	for i, n := range ruleNames {
		n = strings.TrimSpace(n)
		if n == "" {
			return ProductOrSectorSpecificRule{}, formatErr("ruleNames"+indexField(i), n, "rule name must not be blank")
		}
		names[i] = n
	}

	otherOperatorName = strings.TrimSpace(otherOperatorName)
	switch {
	case operator == RuleOperatorOther && otherOperatorName == "":
		return ProductOrSectorSpecificRule{}, inconsistentErr("otherOperatorName", "is required when operator is Other")
	case operator != RuleOperatorOther && otherOperatorName != "":
		return ProductOrSectorSpecificRule{}, inconsistentErr("otherOperatorName", "must only be set when operator is Other")
	}

	return ProductOrSectorSpecificRule{operator: operator, ruleNames: names, otherOperatorName: otherOperatorName}, nil
}

func (r ProductOrSectorSpecificRule) Operator() ProductOrSectorSpecificRuleOperator {
	return r.operator
}
func (r ProductOrSectorSpecificRule) OtherOperatorName() string { return r.otherOperatorName }

func (r ProductOrSectorSpecificRule) RuleNames() []string {
	out := make([]string, len(r.ruleNames))
	copy(out, r.ruleNames)
	return out
}

func (r ProductOrSectorSpecificRule) key() string {
	return string(r.operator) + "|" + r.otherOperatorName + "|" + strings.Join(r.ruleNames, "\x00")
}

func (r ProductOrSectorSpecificRule) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Operator          ProductOrSectorSpecificRuleOperator `json:"operator"`
		RuleNames         []string                            `json:"ruleNames"`
		OtherOperatorName string                              `json:"otherOperatorName,omitempty"`
	}{r.operator, r.ruleNames, r.otherOperatorName})
}

// ProductOrSectorSpecificRuleSet is an ordered set of rules.
type ProductOrSectorSpecificRuleSet struct {
	set orderedSet[ProductOrSectorSpecificRule]
}

func NewProductOrSectorSpecificRuleSet(items ...ProductOrSectorSpecificRule) (ProductOrSectorSpecificRuleSet, error) {
	s, err := newOrderedSet(ProductOrSectorSpecificRule.key, items)
	if err != nil {
		return ProductOrSectorSpecificRuleSet{}, err
	}
	return ProductOrSectorSpecificRuleSet{set: s}, nil
}

func (s ProductOrSectorSpecificRuleSet) Values() []ProductOrSectorSpecificRule { return s.set.values() }
func (s ProductOrSectorSpecificRuleSet) Len() int                              { return s.set.len() }
func (s ProductOrSectorSpecificRuleSet) MarshalJSON() ([]byte, error)          { return s.set.marshal() }

// CrossSectoralStandardSet is a non-empty ordered set of accounting standards.
type CrossSectoralStandardSet struct {
	set orderedSet[CrossSectoralStandard]
}

func NewCrossSectoralStandardSet(items ...CrossSectoralStandard) (CrossSectoralStandardSet, error) {
	if len(items) == 0 {
		return CrossSectoralStandardSet{}, &ValidationError{Kind: ErrMissingArgument, Message: "at least one cross-sectoral standard is required"}
	}
	for i, it := range items {
		if _, err := crossSectoralStandards.parse(string(it)); err != nil {
			return CrossSectoralStandardSet{}, Prefix(indexField(i), err)
		}
	}
	s, err := newOrderedSet(func(c CrossSectoralStandard) string { return string(c) }, items)
	if err != nil {
		return CrossSectoralStandardSet{}, err
	}
	return CrossSectoralStandardSet{set: s}, nil
}

func (s CrossSectoralStandardSet) Values() []CrossSectoralStandard       { return s.set.values() }
func (s CrossSectoralStandardSet) Len() int                              { return s.set.len() }
func (s CrossSectoralStandardSet) Contains(c CrossSectoralStandard) bool { return s.set.contains(c) }
func (s CrossSectoralStandardSet) MarshalJSON() ([]byte, error)          { return s.set.marshal() }
