package export

import "testing"

func TestColName(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "A"},
		{26, "Z"},
		{27, "AA"},
		{52, "AZ"},
		{53, "BA"},
		{702, "ZZ"},
		{703, "AAA"},
	}
	for _, tt := range tests {
		if got := colName(tt.n); got != tt.want {
			t.Errorf("colName(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestColumnWidth_Clamped(t *testing.T) {
	s := Sheet{
		Header: []string{"ID", "Description"},
		Rows: [][]any{
			{"1", string(make([]byte, 200))},
		},
	}
	if w := columnWidth(s, 0); w != 10 {
		t.Errorf("narrow column width = %v, want 10", w)
	}
	if w := columnWidth(s, 1); w != 50 {
		t.Errorf("wide column width = %v, want 50", w)
	}
}
