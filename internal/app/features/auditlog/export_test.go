package auditlog

func ItemEventTypes(data any) []string {
	var out []string
	for _, it := range data.(listData).Items {
		out = append(out, it.EventType)
	}
	return out
}

func Total(data any) int64 { return data.(listData).Total }

func EventTypeOptions(data any) []string { return data.(listData).EventTypes }
