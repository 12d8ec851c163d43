package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"httprule/internal/core/rule"
	"httprule/internal/core/rule/action"
	"httprule/internal/pkg/errs"
)

// RuleSpec is the configuration form of a rule.
type RuleSpec struct {
	Conditions map[string][]string `mapstructure:"conditions" json:"conditions,omitempty" validate:"omitempty,dive,keys,oneof=domain path method,endkeys"`
	Actions    []ActionSpec        `mapstructure:"actions" json:"actions" validate:"dive"`
}

// ActionSpec names an action and its positional arguments.
type ActionSpec struct {
	Type string `mapstructure:"type" json:"type" validate:"required,oneof=updatePath hasCookie hasCookieWithValues refererBelongsTo addHeader removeHeader removeAllURLQueryString addURLQueryString deleteURLQueryString hasHeader hasHeaderWithValues allowDomains"`
	Args []any  `mapstructure:"args" json:"args,omitempty"`
}

// LoadRules decodes the rules key of v into validated rules.
func LoadRules(v *viper.Viper) ([]rule.Rule, error) {
	var specs []RuleSpec
	if err := v.UnmarshalKey(KeyRules, &specs, decodeHook()); err != nil {
		return nil, errs.InvalidValuef("failed to decode rules: %v", err)
	}
	return Build(specs)
}

// LoadRulesFile reads a YAML or JSON rule file.
func LoadRulesFile(path string) ([]rule.Rule, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errs.WrapIO(err, "failed to read rules: %s", path)
	}
	return LoadRules(v)
}

// ParseRulesJSON decodes an inline JSON rule list.
func ParseRulesJSON(s string) ([]rule.Rule, error) {
	var specs []RuleSpec
	if err := sonic.UnmarshalString(s, &specs); err != nil {
		return nil, errs.InvalidValuef("invalid rules json: %v", err)
	}
	return Build(specs)
}

// Build validates specs and turns them into rules.
func Build(specs []RuleSpec) ([]rule.Rule, error) {
	rules := make([]rule.Rule, 0, len(specs))
	for i, spec := range specs {
		if err := validate.Struct(spec); err != nil {
			return nil, errs.InvalidValuef("rule %d: %s", i, describe(err))
		}
		r := rule.Rule{Actions: make([]action.Action, 0, len(spec.Actions))}
		if spec.Conditions != nil {
			r.Conditions = rule.Conditions(spec.Conditions)
		}
		for j, as := range spec.Actions {
			a, err := as.build()
			if err != nil {
				return nil, errs.Prepend(fmt.Sprintf("rule %d action %d", i, j), err)
			}
			r.Actions = append(r.Actions, a)
		}
		rules = append(rules, r)
	}
	return rules, nil
}

func (s ActionSpec) build() (action.Action, error) {
	args := s.Args
	if s.Type == action.NameAddHeader && len(args) == 2 {
		if v, ok := args[1].(string); ok {
			args = []any{args[0], action.ParseHeaderValue(v)}
		}
	}
	return action.New(s.Type, args...)
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("unsupported %s: %v, should be one of %s", fieldName(fe), fe.Value(), strings.ReplaceAll(fe.Param(), " ", "|")))
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fieldName(fe)))
		default:
			msgs = append(msgs, fe.Error())
		}
	}
	return strings.Join(msgs, "; ")
}

func fieldName(fe validator.FieldError) string {
	if strings.HasPrefix(fe.Field(), "Conditions[") {
		return "condition key"
	}
	return strings.ToLower(fe.Field())
}
