package security

import (
	"regexp"
	"strings"

	"httprule/internal/core/request"
)

const redacted = "[REDACTED]"

// Rule 定义了敏感信息检测规则
type Rule struct {
	Name        string
	Pattern     *regexp.Regexp
	Replacement string
}

// Scanner masks secrets in header values before they are logged.
type Scanner struct {
	rules []Rule
	// headers whose whole value is credential material, lower-cased
	sensitive map[string]bool
}

// NewScanner 创建一个新的 Scanner 实例，内置所有检测规则
func NewScanner() *Scanner {
	scanner := &Scanner{
		rules: make([]Rule, 0),
		sensitive: map[string]bool{
			"authorization":       true,
			"proxy-authorization": true,
			"cookie":              true,
			"set-cookie":          true,
			"x-api-key":           true,
		},
	}

	// 按照优先级顺序（先匹配更具体的模式）
	scanner.rules = append(scanner.rules, Rule{
		Name:        "Private Key",
		Pattern:     regexp.MustCompile(`-----BEGIN [A-Z ]+ PRIVATE KEY-----`),
		Replacement: "[PRIVATE_KEY_REDACTED]",
	})

	scanner.rules = append(scanner.rules, Rule{
		Name:        "AWS Access Key",
		Pattern:     regexp.MustCompile(`\bAKIA[0-9A-Z]{16}\b`),
		Replacement: "[AWS_AK_REDACTED]",
	})

	scanner.rules = append(scanner.rules, Rule{
		Name:        "OpenAI API Key",
		Pattern:     regexp.MustCompile(`\bsk-(?:proj-)?[a-zA-Z0-9]{20,}\b`),
		Replacement: "[OPENAI_KEY_REDACTED]",
	})

	scanner.rules = append(scanner.rules, Rule{
		Name:        "GitHub Token",
		Pattern:     regexp.MustCompile(`\b(ghp|gho|ghu|ghs|ghr)_[a-zA-Z0-9]{36}\b`),
		Replacement: "[GITHUB_TOKEN_REDACTED]",
	})

	scanner.rules = append(scanner.rules, Rule{
		Name:        "JWT",
		Pattern:     regexp.MustCompile(`\beyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`),
		Replacement: "[JWT_REDACTED]",
	})

	scanner.rules = append(scanner.rules, Rule{
		Name:        "Email",
		Pattern:     regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`),
		Replacement: "[EMAIL_REDACTED]",
	})

	return scanner
}

// Sanitize 按顺序应用所有规则，返回清理后的文本
func (s *Scanner) Sanitize(input string) string {
	result := input
	for _, rule := range s.rules {
		result = rule.Pattern.ReplaceAllString(result, rule.Replacement)
	}
	return result
}

// SanitizeHeader masks one header value. Credential headers are masked
// whole; cookie names and the auth scheme stay readable.
func (s *Scanner) SanitizeHeader(name, value string) string {
	lower := strings.ToLower(name)
	if !s.sensitive[lower] {
		return s.Sanitize(value)
	}
	switch lower {
	case "cookie", "set-cookie":
		parts := strings.Split(value, ";")
		for i, part := range parts {
			k, _, ok := strings.Cut(part, "=")
			if ok {
				parts[i] = k + "=" + redacted
			}
		}
		return strings.Join(parts, ";")
	case "authorization", "proxy-authorization":
		if scheme, _, ok := strings.Cut(value, " "); ok {
			return scheme + " " + redacted
		}
	}
	return redacted
}

// SanitizeHeaders returns a masked copy suitable for logging.
func (s *Scanner) SanitizeHeaders(h request.Headers) map[string]string {
	out := make(map[string]string, len(h))
	for _, kv := range h {
		out[kv.Name] = s.SanitizeHeader(kv.Name, kv.Value)
	}
	return out
}

// AddRule 动态添加自定义规则
func (s *Scanner) AddRule(name string, pattern string, replacement string) error {
	compiled, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}
	s.rules = append(s.rules, Rule{
		Name:        name,
		Pattern:     compiled,
		Replacement: replacement,
	})
	return nil
}

// AddSensitiveHeader 把 name 加入整体屏蔽的 header 列表
func (s *Scanner) AddSensitiveHeader(name string) {
	s.sensitive[strings.ToLower(name)] = true
}
