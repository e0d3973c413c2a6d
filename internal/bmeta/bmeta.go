// Package bmeta метаданные сборки, задаются через -ldflags.
package bmeta

import "go.uber.org/zap"

const defaultBuildMeta = "N/A" // Значение по умолчанию

// Fields возвращает версию, дату и комит сборки в виде полей лога.
func Fields(version, date, commit string) []zap.Field {
	return []zap.Field{
		zap.String("version", orDefault(version)),
		zap.String("date", orDefault(date)),
		zap.String("commit", orDefault(commit)),
	}
}

func orDefault(v string) string {
	if v == "" {
		return defaultBuildMeta
	}
	return v
}
