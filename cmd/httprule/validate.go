package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"httprule/internal/core/rule"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a rule set without transforming anything",
	RunE: func(cmd *cobra.Command, args []string) error {
		rules, err := loadRules(cmd)
		if err != nil {
			return err
		}
		engine := rule.NewEngine(nil, nil)
		if err := engine.Add(rules...); err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		for i, r := range engine.Rules() {
			names := make([]string, 0, len(r.Actions))
			for _, a := range r.Actions {
				names = append(names, fmt.Sprint(a))
			}
			fmt.Fprintf(w, "rule %d: when %v do [%s]\n", i, conditionsText(r.Conditions), strings.Join(names, ", "))
		}
		fmt.Fprintf(w, "%d rule(s) OK\n", engine.Len())
		return nil
	},
}

func conditionsText(c rule.Conditions) string {
	if c == nil {
		return "always"
	}
	return fmt.Sprint(map[string][]string(c))
}

func SetupValidateCmd() {
	rootCmd.AddCommand(validateCmd)
}
