package buildinfo

import (
	"strings"
	"testing"
)

func TestGenerator(t *testing.T) {
	defer func(v, c string) { Version, Commit = v, c }(Version, Commit)

	tests := []struct {
		version, commit, want string
	}{
		{"dev", "none", "coursemap dev (none)"},
		{"v0.3.0", "1a2b3c4d5e6f7a8b", "coursemap v0.3.0 (1a2b3c4)"},
		{"v0.3.1", "abc", "coursemap v0.3.1 (abc)"},
	}
	for _, tt := range tests {
		Version, Commit = tt.version, tt.commit
		if got := Generator(); got != tt.want {
			t.Errorf("Generator() = %q, want %q", got, tt.want)
		}
	}
}

func TestTemplate(t *testing.T) {
	tmpl := Template()
	if !strings.HasPrefix(tmpl, "{{.Name}} "+Version) {
		t.Errorf("Template() = %q", tmpl)
	}
	if !strings.Contains(tmpl, "commit: "+Commit) {
		t.Errorf("Template() lacks commit: %q", tmpl)
	}
}
