package pipeline

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = Describe("Pipeline rendering", func() {
	It("should render an empty pipeline as an empty string", func() {
		p, err := Parse([]byte(`[]`))
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(p).To(gomega.BeEmpty())
		gomega.Expect(p.Prql(Postgres)).To(gomega.Equal(""))
	})

	It("should join steps in document order", func() {
		document := `[
			{"name": "domain", "domain": "sales", "table": true},
			{"name": "filter", "condition": {"column": "City", "operator": "eq", "value": "Paris"}},
			{"name": "aggregate", "on": ["City"], "aggregations": [{"columns": ["Price"], "newcolumns": ["Price_sum"], "aggfunction": "sum"}]}
		]`
		p, err := Parse([]byte(document))
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(p).To(gomega.HaveLen(3))
		gomega.Expect(p.Prql(Postgres)).To(gomega.Equal("from `sales` | " +
			"filter `City` == \"Paris\" | " +
			"group { `City` } ( aggregate { `Price_sum` = sum `Price` } )"))
	})

	It("should not reorder steps", func() {
		document := `[
			{"name": "filter", "condition": {"column": "a", "operator": "isnull"}},
			{"name": "domain", "domain": "sales"}
		]`
		p, err := Parse([]byte(document))
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(p.Prql(Postgres)).To(gomega.Equal("filter `a` == null | from `sales`"))
	})

	It("should render each dialect from the same parsed document", func() {
		document := `[
			{"name": "domain", "domain": "trips"},
			{"name": "filter", "condition": {"column": "destination", "operator": "in", "value": ["Lyon", "Brest"]}}
		]`
		p, err := Parse([]byte(document))
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(p.Prql(Postgres)).To(gomega.Equal("from `trips` | " + `filter s"\"destination\" IN ('Lyon', 'Brest')"`))
		gomega.Expect(p.Prql(BigQuery)).To(gomega.Equal("from `trips` | filter s\"`destination` IN ('Lyon', 'Brest')\""))
	})

	It("should decode through encoding/json as a struct field", func() {
		var payload struct {
			Pipeline Pipeline `json:"pipeline"`
			Dialect  Dialect  `json:"dialect"`
		}
		document := `{"pipeline": [{"name": "domain", "domain": "sales"}], "dialect": "bigquery"}`
		gomega.Expect(json.Unmarshal([]byte(document), &payload)).To(gomega.Succeed())
		gomega.Expect(payload.Dialect).To(gomega.Equal(BigQuery))
		gomega.Expect(payload.Pipeline.Prql(payload.Dialect)).To(gomega.Equal("from `sales`"))
	})
})
