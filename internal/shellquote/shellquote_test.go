package shellquote

import "testing"

func TestJoin(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"modforge", "rename", "item", "ruby_blade", "ruby_sword"}, "modforge rename item ruby_blade ruby_sword"},
		{[]string{"modforge", "-p", "/tmp/my mod"}, "modforge -p '/tmp/my mod'"},
		{[]string{"it's"}, `'it'\''s'`},
		{[]string{""}, "''"},
	}
	for _, tt := range tests {
		if got := Join(tt.args...); got != tt.want {
			t.Errorf("Join(%q) = %s, want %s", tt.args, got, tt.want)
		}
	}
}
