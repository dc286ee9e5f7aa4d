package filter

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Parser", func() {
	Context("Valid expressions", func() {
		type testCase struct {
			input  string
			output string
		}

		tests := []testCase{
			// ===== SIMPLE EQUALITY =====
			{input: "dialect = 'postgres'", output: `(dialect equal "postgres")`},
			{input: "dialect != 'postgres'", output: `(dialect notEqual "postgres")`},
			{input: `dialect = "postgres"`, output: `(dialect equal "postgres")`},
			{input: `dialect != "postgres"`, output: `(dialect notEqual "postgres")`},

			// ===== COMPARISON OPERATORS =====
			{input: "duration > '10'", output: `(duration greater "10")`},
			{input: "duration >= '10'", output: `(duration gte "10")`},
			{input: "duration < '10'", output: `(duration less "10")`},
			{input: "duration <= '10'", output: `(duration lte "10")`},

			// ===== REGEX OPERATORS =====
			{input: "prql ~ /pattern/", output: "(prql like /pattern/)"},
			{input: "prql !~ /pattern/", output: "(prql notLike /pattern/)"},
			{input: "prql ~ /^from orders/", output: "(prql like /^from orders/)"},
			{input: "sql !~ /JOIN/", output: "(sql notLike /JOIN/)"},
			{input: "error ~ /a\\/b/", output: "(error like /a/b/)"},

			// ===== BOOLEAN VALUES =====
			{input: "enabled = true", output: "(enabled equal true)"},
			{input: "enabled = false", output: "(enabled equal false)"},
			{input: "active != true", output: "(active notEqual true)"},
			{input: "active != false", output: "(active notEqual false)"},
			{input: "enabled = TRUE", output: "(enabled equal true)"},
			{input: "enabled = FALSE", output: "(enabled equal false)"},
			{input: "enabled = True", output: "(enabled equal true)"},
			{input: "enabled = False", output: "(enabled equal false)"},

			// ===== QUANTITY VALUES =====
			// With duration units
			{input: "duration > 2s", output: "(duration greater 2.00s)"},
			{input: "duration >= 500ms", output: "(duration gte 500.00ms)"},
			{input: "duration < 5m", output: "(duration less 5.00m)"},
			{input: "duration <= 1h", output: "(duration lte 1.00h)"},
			{input: "duration = 250ms", output: "(duration equal 250.00ms)"},
			{input: "duration > 1.5s", output: "(duration greater 1.50s)"},
			{input: "duration > 100.25ms", output: "(duration greater 100.25ms)"},
			{input: "duration < 0.5h", output: "(duration less 0.50h)"},

			// Without units (plain numbers)
			{input: "duration > 100", output: "(duration greater 100.00)"},
			{input: "duration >= 50", output: "(duration gte 50.00)"},
			{input: "duration < 10", output: "(duration less 10.00)"},
			{input: "duration <= 5", output: "(duration lte 5.00)"},
			{input: "duration = 0", output: "(duration equal 0.00)"},
			{input: "ratio > 3.14", output: "(ratio greater 3.14)"},
			{input: "ratio = 0.5", output: "(ratio equal 0.50)"},

			// ===== UNDERSCORED IDENTIFIERS =====
			{input: "duration_ms > 100", output: "(duration_ms greater 100.00)"},
			{input: "created_at >= '2026-01-01'", output: `(created_at gte "2026-01-01")`},
			{input: "generated_sql ~ /LIMIT/", output: "(generated_sql like /LIMIT/)"},

			// ===== AND EXPRESSIONS =====
			{input: "a = '1' and b = '2'", output: `((a equal "1") and (b equal "2"))`},
			{input: "a = '1' AND b = '2'", output: `((a equal "1") and (b equal "2"))`},
			{input: "a = '1' And b = '2'", output: `((a equal "1") and (b equal "2"))`},
			{input: "a = '1' and b = '2' and c = '3'", output: `(((a equal "1") and (b equal "2")) and (c equal "3"))`},

			// ===== OR EXPRESSIONS =====
			{input: "a = '1' or b = '2'", output: `((a equal "1") or (b equal "2"))`},
			{input: "a = '1' OR b = '2'", output: `((a equal "1") or (b equal "2"))`},
			{input: "a = '1' Or b = '2'", output: `((a equal "1") or (b equal "2"))`},
			{input: "a = '1' or b = '2' or c = '3'", output: `(((a equal "1") or (b equal "2")) or (c equal "3"))`},

			// ===== MIXED AND/OR (AND has higher precedence) =====
			{input: "a = '1' or b = '2' and c = '3'", output: `((a equal "1") or ((b equal "2") and (c equal "3")))`},
			{input: "a = '1' and b = '2' or c = '3'", output: `(((a equal "1") and (b equal "2")) or (c equal "3"))`},
			{input: "a = '1' or b = '2' and c = '3' or d = '4'", output: `(((a equal "1") or ((b equal "2") and (c equal "3"))) or (d equal "4"))`},
			{input: "a = '1' and b = '2' or c = '3' and d = '4'", output: `(((a equal "1") and (b equal "2")) or ((c equal "3") and (d equal "4")))`},

			// ===== PARENTHESES (grouping) =====
			{input: "(a = '1')", output: `(a equal "1")`},
			{input: "((a = '1'))", output: `(a equal "1")`},
			{input: "(a = '1' and b = '2')", output: `((a equal "1") and (b equal "2"))`},
			{input: "(a = '1' or b = '2')", output: `((a equal "1") or (b equal "2"))`},

			// ===== PARENTHESES CHANGING PRECEDENCE =====
			{input: "(a = '1' or b = '2') and c = '3'", output: `(((a equal "1") or (b equal "2")) and (c equal "3"))`},
			{input: "a = '1' and (b = '2' or c = '3')", output: `((a equal "1") and ((b equal "2") or (c equal "3")))`},
			{input: "(a = '1' or b = '2') and (c = '3' or d = '4')", output: `(((a equal "1") or (b equal "2")) and ((c equal "3") or (d equal "4")))`},

			// ===== DEEPLY NESTED PARENTHESES =====
			{input: "((a = '1' or b = '2') and c = '3')", output: `(((a equal "1") or (b equal "2")) and (c equal "3"))`},
			{input: "(a = '1' and (b = '2' or (c = '3' and d = '4')))", output: `((a equal "1") and ((b equal "2") or ((c equal "3") and (d equal "4"))))`},

			// ===== STRINGS WITH SPECIAL CHARACTERS =====
			{input: "prql = 'hello world'", output: `(prql equal "hello world")`},
			{input: "prql = 'test=value'", output: `(prql equal "test=value")`},
			{input: "prql = 'test>value'", output: `(prql equal "test>value")`},
			{input: "prql = 'test<value'", output: `(prql equal "test<value")`},

			// ===== MIXED TYPES IN EXPRESSIONS =====
			{input: "dialect = 'postgres' and enabled = true", output: `((dialect equal "postgres") and (enabled equal true))`},
			{input: "prql ~ /take/ and duration > 2s", output: "((prql like /take/) and (duration greater 2.00s))"},
			{input: "enabled = true or duration < 500ms", output: "((enabled equal true) or (duration less 500.00ms))"},
			{input: "prql ~ /sort/ and enabled = false and duration >= 1s", output: "(((prql like /sort/) and (enabled equal false)) and (duration gte 1.00s))"},

			// ===== REAL-WORLD EXAMPLES =====
			{
				input:  "dialect = 'postgres' and status = 'error'",
				output: `((dialect equal "postgres") and (status equal "error"))`,
			},
			{
				input:  "prql ~ /^from orders/ and status = 'compiled'",
				output: `((prql like /^from orders/) and (status equal "compiled"))`,
			},
			{
				input:  "duration >= 2s and status = 'compiled' or dialect = 'bigquery'",
				output: `(((duration gte 2.00s) and (status equal "compiled")) or (dialect equal "bigquery"))`,
			},
			{
				input:  "(duration >= 2s or status = 'error') and dialect = 'postgres'",
				output: `(((duration gte 2.00s) or (status equal "error")) and (dialect equal "postgres"))`,
			},
			{
				input:  "dialect = 'postgres' and status != 'error' and created >= '2026-01-01'",
				output: `(((dialect equal "postgres") and (status notEqual "error")) and (created gte "2026-01-01"))`,
			},
			{
				input:  "status = 'error' and (error ~ /unknown/ or error ~ /timeout/)",
				output: `((status equal "error") and ((error like /unknown/) or (error like /timeout/)))`,
			},

			// ===== OPERATORS WITHOUT SPACES =====
			{input: "dialect='postgres'", output: `(dialect equal "postgres")`},
			{input: "duration>='10'", output: `(duration gte "10")`},
			{input: "duration<='10'", output: `(duration lte "10")`},
			{input: "prql~/pattern/", output: "(prql like /pattern/)"},

			// ===== WHITESPACE VARIATIONS =====
			{input: "  dialect = 'postgres'  ", output: `(dialect equal "postgres")`},
			{input: "\tdialect = 'postgres'\t", output: `(dialect equal "postgres")`},
			{input: "dialect   =   'postgres'", output: `(dialect equal "postgres")`},
			{input: "a = '1'   and   b = '2'", output: `((a equal "1") and (b equal "2"))`},
		}

		for _, test := range tests {
			test := test // capture range variable
			It("should parse: "+test.input, func() {
				expr, err := Parse([]byte(test.input))
				Expect(err).ToNot(HaveOccurred())
				Expect(expr.String()).To(Equal(test.output))
			})
		}
	})

	Context("Invalid expressions", func() {
		inputs := []string{
			"dialect 'postgres'",
			"dialect =",
			"(dialect = 'postgres'",
			"= = =",
			"",
			"   ",
			"dialect = = 'postgres'",
			"= 'postgres'",
		}

		for _, input := range inputs {
			input := input
			It("should return ParseError for: "+input, func() {
				_, err := Parse([]byte(input))
				Expect(err).To(HaveOccurred())
				var pe ParseError
				Expect(errors.As(err, &pe)).To(BeTrue())
			})
		}
	})

})
