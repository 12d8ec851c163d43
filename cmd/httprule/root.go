package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"httprule/internal/config"
	"httprule/internal/core/rule"
	"httprule/internal/pkg/logger"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "httprule",
	Short: "Declarative HTTP request rewriting",
	Long: `httprule loads a serialized HTTP request, applies an ordered list of
condition/action rules to it and writes the result back out.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./configs/config.yaml)")
	rootCmd.PersistentFlags().String("rules", "", "rule file (yaml or json)")
	rootCmd.PersistentFlags().String("rules-json", "", "inline rule list as json")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
}

func initConfig() {
	config.Init(cfgFile)

	_ = viper.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag(config.KeyTransformFormat, transformCmd.Flags().Lookup("format"))
	_ = viper.BindPFlag(config.KeyTransformMode, transformCmd.Flags().Lookup("mode"))
}

// newLogger 根据配置创建全局 logger
func newLogger() (*logger.Logger, error) {
	level := viper.GetString(config.KeyLogLevel)
	if level == "" {
		level = "info"
	}
	zl, err := logger.NewWithFile(level, viper.GetString(config.KeyLogFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger.Wrap(zl), nil
}

// loadRules picks the rule source: --rules, then --rules-json, then the
// rules section of the config file.
func loadRules(cmd *cobra.Command) ([]rule.Rule, error) {
	if path, _ := cmd.Flags().GetString("rules"); path != "" {
		return config.LoadRulesFile(path)
	}
	if inline, _ := cmd.Flags().GetString("rules-json"); inline != "" {
		return config.ParseRulesJSON(inline)
	}
	return config.LoadRules(viper.GetViper())
}
