package logging

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RedactedText 替换敏感信息的文本
const RedactedText = "[REDACTED]"

var (
	// password=xxx, pwd=xxx, pass=xxx
	passwordPattern = regexp.MustCompile(`(?i)(password|pwd|pass)=[^;&\s]+`)

	// user:pass@host
	connStringPattern = regexp.MustCompile(`://[^:/\s]+:[^@\s]+@`)

	// MySQL DSN: user:pass@tcp(host)/db
	mysqlDSNPattern = regexp.MustCompile(`^[^:/\s]+:[^@\s]+@`)
)

// New 创建 logger
// format 为 json 时使用生产配置，其余使用开发（console）配置
func New(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var cfg zap.Config
	if format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.DisableStacktrace = true
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}

	return cfg.Build()
}

// SanitizeConnectionString 去掉连接串中的密码，记录日志前使用
func SanitizeConnectionString(connStr string) string {
	if connStr == "" {
		return ""
	}
	sanitized := passwordPattern.ReplaceAllString(connStr, "${1}="+RedactedText)
	if strings.Contains(sanitized, "://") {
		return connStringPattern.ReplaceAllString(sanitized, "://"+RedactedText+"@")
	}
	return mysqlDSNPattern.ReplaceAllString(sanitized, RedactedText+"@")
}

// SanitizeError 去掉错误信息中的敏感内容
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return SanitizeConnectionString(err.Error())
}
