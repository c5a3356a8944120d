package domain

// CoalesceStr returns the first non-empty string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// StrFromPtrWithDefault returns the first non-nil *string value, or the fallback.
func StrFromPtrWithDefault(fallback string, ptrs ...*string) string {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}

// ColumnFromPtrWithDefault returns the first non-nil *Column value, or the fallback.
func ColumnFromPtrWithDefault(fallback Column, ptrs ...*Column) Column {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}

// PriorityFromPtrWithDefault returns the first non-nil *Priority value, or the fallback.
func PriorityFromPtrWithDefault(fallback Priority, ptrs ...*Priority) Priority {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}
