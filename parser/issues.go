package parser

import "github.com/lyraproj/issue/issue"

const (
	OperatorWithoutName = `INVOCAT_OPERATOR_WITHOUT_NAME`
	RuleWithoutTitle    = `INVOCAT_RULE_WITHOUT_TITLE`
	UnexpectedToken     = `INVOCAT_UNEXPECTED_TOKEN`
	UnmatchedGroup      = `INVOCAT_UNMATCHED_GROUP`
	UnterminatedBlock   = `INVOCAT_UNTERMINATED_BLOCK`
)

func init() {
	issue.Hard(OperatorWithoutName, `operator '%{operator}' must be preceded by a single pool name`)

	issue.Hard(RuleWithoutTitle, `a line of '=' must follow the title of a block definition`)

	issue.Hard(UnexpectedToken, `unexpected %{type} '%{token}'`)

	issue.Hard(UnmatchedGroup, `unmatched '%{token}'`)

	issue.Hard(UnterminatedBlock, `the last block of '%{name}' is not closed by a line of '-'`)
}
