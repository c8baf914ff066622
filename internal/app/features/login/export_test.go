package login

func FormError(data any) string {
	d, _ := data.(loginFormData)
	return d.Error
}

func FormReturnURL(data any) string {
	d, _ := data.(loginFormData)
	return d.ReturnURL
}
