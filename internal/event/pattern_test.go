package event

import "testing"

func TestSignatureTypeName(t *testing.T) {
	tests := []struct {
		name string
		sig  string
		want string
	}{
		{"class", "Ljava/lang/String;", "java.lang.String"},
		{"nested package", "Lcom/example/app/Handler;", "com.example.app.Handler"},
		{"default package", "LMain;", "Main"},
		{"object array", "[Ljava/lang/String;", "java.lang.String[]"},
		{"two dimensional array", "[[Ljava/lang/Object;", "java.lang.Object[][]"},
		{"int array", "[I", "int[]"},
		{"boolean", "Z", "boolean"},
		{"already dotted", "java.lang.String", "java.lang.String"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SignatureTypeName(tt.sig); got != tt.want {
				t.Errorf("SignatureTypeName(%q) = %q, want %q", tt.sig, got, tt.want)
			}
		})
	}
}

func TestMatchPattern(t *testing.T) {
	tests := []struct {
		name    string
		sig     string
		pattern string
		want    bool
	}{
		{"exact match", "La/b/C;", "a.b.C", true},
		{"exact mismatch", "La/b/C;", "a.b.D", false},
		{"trailing wildcard match", "La/b/C;", "a.b.*", true},
		{"trailing wildcard mismatch", "La/b/C;", "x.*", false},
		{"leading wildcard match", "La/b/C;", "*.C", true},
		{"leading wildcard mismatch", "La/b/C;", "*.D", false},
		{"bare wildcard", "La/b/C;", "*", true},
		{"bare wildcard anything", "Lcom/example/Foo;", "*", true},
		{"interior star is literal", "La/b*c/D;", "a.b*c.D", true},
		{"interior star does not glob", "La/bXc/D;", "a.b*c.D", false},
		{"leading wins over interior", "La/x*y/C;", "*y.C", true},
		{"full package prefix", "Ljava/lang/String;", "java.lang.*", true},
		{"suffix on simple name", "Ljava/lang/String;", "*String", true},
		{"empty pattern only matches empty", "La/b/C;", "", false},
		{"case sensitive", "La/b/C;", "a.b.c", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchPattern(tt.sig, tt.pattern); got != tt.want {
				t.Errorf("MatchPattern(%q, %q) = %v, want %v", tt.sig, tt.pattern, got, tt.want)
			}
		})
	}
}
