package indicators

import "github.com/dalemusser/mentorhub/internal/app/store/queries/summaryqueries"

func ListItemCount(data any) int {
	d, ok := data.(listData)
	if !ok {
		return -1
	}
	return len(d.Items)
}

func FieldErrors(data any) map[string]string {
	d, ok := data.(formData)
	if !ok {
		return nil
	}
	return d.FieldErrors
}

func SummaryCategories(data any) []summaryqueries.CategoryStats {
	d, ok := data.(summaryData)
	if !ok {
		return nil
	}
	return d.Categories
}
