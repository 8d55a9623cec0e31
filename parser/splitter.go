package parser

import (
	"strings"

	"github.com/georgestagg/ggsql/ast"
)

// Split partitions a full query into its SQL and VISUALISE portions.
// It never fails on SQL it doesn't understand; the only failure mode
// is an unsupported placement of VISUALISE FROM.
func Split(query string) (sqlText string, vizText string, err error) {
	query = strings.TrimSpace(query)

	vizStart, found := findTopLevelVisualise(query)
	if !found {
		return query, "", nil
	}

	sqlText = strings.TrimSpace(query[:vizStart])
	vizText = strings.TrimSpace(query[vizStart:])

	target, hasFrom := extractFromTarget(vizText)
	if !hasFrom {
		return sqlText, vizText, nil
	}

	injected := "SELECT * FROM " + target
	if sqlText == "" {
		return injected, vizText, nil
	}

	upper := strings.ToUpper(sqlText)
	if !strings.HasPrefix(upper, "WITH") {
		return "", "", ast.ParseError(
			"VISUALISE FROM can only be used standalone or after WITH statements. " +
				"For other SQL statements, use 'SELECT ... VISUALISE AS' instead.")
	}

	return sqlText + " " + injected, vizText, nil
}

// findTopLevelVisualise scans query for the first VISUALISE/VISUALIZE
// keyword that appears outside any string, comment, or parenthesised
// group, returning its byte offset.
func findTopLevelVisualise(query string) (int, bool) {
	lex := NewLexer(query)
	depth := 0
	for {
		tok := lex.Next()
		if tok.Kind == TokEOF {
			return 0, false
		}
		if tok.Kind == TokSymbol && tok.Text == "(" {
			depth++
			continue
		}
		if tok.Kind == TokSymbol && tok.Text == ")" {
			if depth > 0 {
				depth--
			}
			continue
		}
		if depth == 0 && tok.Kind == TokIdent && (tok.IsKeyword("VISUALISE") || tok.IsKeyword("VISUALIZE")) {
			return tok.Start, true
		}
	}
}

// extractFromTarget inspects the start of a VISUALISE suffix for an
// optional FROM clause, returning the injection text (identifier
// unquoted, or a string literal with its original quotes) and whether
// one was present. It stops looking once it reaches AS or WITH,
// mirroring the grammar's "first content child" rule.
func extractFromTarget(vizText string) (string, bool) {
	lex := NewLexer(vizText)
	tok := lex.Next() // VISUALISE / VISUALIZE
	_ = tok
	next := lex.Next()
	if !next.IsKeyword("FROM") {
		return "", false
	}
	target := lex.Next()
	switch target.Kind {
	case TokIdent:
		return target.Text, true
	case TokString:
		return target.Raw, true
	default:
		return "", false
	}
}
