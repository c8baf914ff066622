// internal/app/features/companies/workbook.go
package companies

import (
	"context"

	companystore "github.com/dalemusser/mentorhub/internal/app/store/companies"
	"github.com/dalemusser/mentorhub/internal/app/store/queries/summaryqueries"
	"github.com/dalemusser/mentorhub/internal/app/system/export"
	"github.com/dalemusser/mentorhub/internal/app/system/lookup"
	"go.mongodb.org/mongo-driver/mongo"
)

var companyHeader = []string{
	"Company ID", "Name", "Active", "Owner", "Email", "Phone", "Industry",
	"Size", "Founded", "Age", "Address", "City", "State", "Group",
}

// BuildWorkbook assembles the companies workbook: a Companies sheet, a
// Summary sheet and the by-city and by-industry breakdowns. It returns the
// number of company rows written. The operator CLI shares it with the web
// export.
func BuildWorkbook(ctx context.Context, db *mongo.Database) (*export.Workbook, int, error) {
	companies, err := companystore.New(db).All(ctx)
	if err != nil {
		return nil, 0, err
	}
	groups, err := lookup.GroupOptions(ctx, db)
	if err != nil {
		return nil, 0, err
	}
	sum, err := summaryqueries.CompanySummary(ctx, db)
	if err != nil {
		return nil, 0, err
	}
	labels := lookup.Labels(groups)

	rows := make([][]any, 0, len(companies))
	for _, c := range companies {
		var founded, age, group any
		if c.FoundingDate != nil {
			founded = *c.FoundingDate
		}
		if c.Age != nil {
			age = *c.Age
		}
		if c.GroupID != nil {
			group = labels[*c.GroupID]
		}
		rows = append(rows, []any{
			c.CompanyID, c.Name, c.IsActive, c.OwnerName, c.Email, c.Phone,
			c.Industry, c.CompanySize, founded, age, c.Address, c.City,
			c.State, group,
		})
	}

	stats := [][]any{{"Total companies", sum.TotalCompanies}}
	if sum.AvgAge != nil {
		stats = append(stats, []any{"Average age", *sum.AvgAge})
	}
	if sum.YoungestAge != nil {
		stats = append(stats, []any{"Youngest age", *sum.YoungestAge})
	}
	if sum.OldestAge != nil {
		stats = append(stats, []any{"Oldest age", *sum.OldestAge})
	}

	wb, err := export.NewWorkbook([]export.Sheet{
		{Title: "Companies", Header: companyHeader, Rows: rows},
		{Title: "Summary", Header: []string{"Metric", "Value"}, Rows: stats},
		{Title: "By City", Header: []string{"City", "Companies"}, Rows: keyCountRows(sum.CompaniesByCity)},
		{Title: "By Industry", Header: []string{"Industry", "Companies"}, Rows: keyCountRows(sum.CompaniesBySector)},
	})
	if err != nil {
		return nil, 0, err
	}
	return wb, len(rows), nil
}

func keyCountRows(kcs []summaryqueries.KeyCount) [][]any {
	out := make([][]any, 0, len(kcs))
	for _, kc := range kcs {
		out = append(out, []any{kc.Key, kc.Count})
	}
	return out
}
