// Package prompt holds the fixed instruction text sent to the language model and
// builds the per-request user message from the transcript and its translation.
package prompt

import (
	_ "embed"
	"fmt"
)

// MinutesSystem is the behavioral instruction for minutes generation. It is not
// parameterized at runtime and every entry point uses this one copy.
//
//go:embed minutes_system.md
var MinutesSystem string

// SectionHeadings are the Markdown headings the instruction asks the model to emit.
var SectionHeadings = []string{
	"# 議事録",
	"## 基本情報",
	"## 会議の要旨",
	"## 詳細内容",
	"## 質疑応答",
	"## 決定事項",
	"## タスク・To Do",
	"## 未決事項",
}

// UnclearMarkers are the fixed annotations the model must use instead of guessing.
var UnclearMarkers = []string{
	"（聞き取り不明瞭）",
	"（固有名詞不明）",
	"（詳細要確認）",
}

// SubjectUnknownMarker annotates a subject that could not be resolved.
const SubjectUnknownMarker = "（主語不明）"

const userMessageTemplate = `以下は英語の会議文字起こしとその日本語翻訳です。
これを基に、指示に従って日本語の議事録を作成してください。

## 原文（英語）
%s

## 翻訳（日本語・参考）
%s

上記の内容から、議事録を作成してください。
翻訳は参考として提供していますが、原文を正確に理解して議事録を作成してください。
`

// BuildUserMessage pairs the original transcript with its machine translation.
func BuildUserMessage(original, translated string) string {
	return fmt.Sprintf(userMessageTemplate, original, translated)
}
