package report

import (
	"github.com/google/uuid"
	"github.com/mynet/sales/internal/domain/catalog"
	"github.com/mynet/sales/internal/domain/report"
	"github.com/mynet/sales/internal/domain/sales"
)

// byProduct buckets records by product, keeping their order
func byProduct(records []sales.Record) map[uuid.UUID][]sales.Record {
	out := make(map[uuid.UUID][]sales.Record)
	for _, r := range records {
		out[r.ProductID] = append(out[r.ProductID], r)
	}
	return out
}

// byCompany buckets records by company, keeping their order
func byCompany(records []sales.Record) map[uuid.UUID][]sales.Record {
	out := make(map[uuid.UUID][]sales.Record)
	for _, r := range records {
		out[r.CompanyID] = append(out[r.CompanyID], r)
	}
	return out
}

// within returns the records dated inside w
func within(records []sales.Record, w report.Window) []sales.Record {
	var out []sales.Record
	for _, r := range records {
		if w.Contains(r.SalesDate) {
			out = append(out, r)
		}
	}
	return out
}

func productRef(p *catalog.Product) report.ProductRef {
	return report.ProductRef{
		ProductID:   p.ID,
		Category:    p.Category,
		ProductCode: p.Code,
		ProductName: p.Name,
	}
}
