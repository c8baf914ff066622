package companies

// ListItemCount reports how many rows a companies_list view model holds.
func ListItemCount(data any) int {
	d, ok := data.(listData)
	if !ok {
		return -1
	}
	return len(d.Items)
}
