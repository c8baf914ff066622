package home

func IsLoggedIn(data any) bool    { return data.(homeData).IsLoggedIn }
func GoogleEnabled(data any) bool { return data.(homeData).GoogleEnabled }
