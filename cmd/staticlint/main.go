// Package main реализует команду «staticlint» на основе multichecker для
// статического анализа кода.
//
// Использование:
//
//  1. Установить инструмент:
//     go install ./cmd/staticlint
//
//  2. Запустить на пакетах:
//     staticlint ./...
//
// Включённые анализаторы:
//   - printf, shadow, structtag, nilness, unusedresult из golang.org/x/tools;
//   - все анализаторы staticcheck с префиксом "SA" и один из simple
//     (honnef.co/go/tools);
//   - exitmain: запрещает прямые вызовы os.Exit в функции main() пакета main;
//   - sqlconcat: запрещает SQL, собранный через fmt.Sprint* или конкатенацию,
//     в вызовах database/sql.
package main

import (
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
	"golang.org/x/tools/go/analysis/passes/nilness"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/shadow"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"golang.org/x/tools/go/analysis/passes/unusedresult"
	"honnef.co/go/tools/simple"
	"honnef.co/go/tools/staticcheck"
)

func analyzers() []*analysis.Analyzer {
	list := []*analysis.Analyzer{
		printf.Analyzer,
		shadow.Analyzer,
		structtag.Analyzer,
		nilness.Analyzer,
		unusedresult.Analyzer,
		ExitMainAnalyzer,
		SQLConcatAnalyzer,
	}

	for _, la := range staticcheck.Analyzers {
		if strings.HasPrefix(la.Analyzer.Name, "SA") {
			list = append(list, la.Analyzer)
		}
	}
	return append(list, simple.Analyzers[1].Analyzer)
}

func main() {
	multichecker.Main(analyzers()...)
}
