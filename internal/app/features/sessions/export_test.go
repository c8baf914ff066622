package sessions

func FieldErrors(data any) map[string]string {
	d, ok := data.(formData)
	if !ok {
		return nil
	}
	return d.FieldErrors
}

func ListItemCount(data any) int {
	d, ok := data.(listData)
	if !ok {
		return -1
	}
	return len(d.Items)
}

func ListFilterError(data any) string {
	d, _ := data.(listData)
	return d.FilterError
}

func FormMentorID(data any) string {
	d, _ := data.(formData)
	return d.MentorID
}
