package mentors

func FieldErrors(data any) map[string]string {
	d, ok := data.(formData)
	if !ok {
		return nil
	}
	return d.FieldErrors
}
