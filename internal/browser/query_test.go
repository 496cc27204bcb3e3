package browser

import "testing"

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		value    string
		relative bool
		xpath    bool
		expr     string
	}{
		{"css passthrough", ByCSS, "input[type='text']", false, false, "input[type='text']"},
		{"id", ByID, "shaare", false, false, "#shaare"},
		{"id with dot", ByID, "my.field", false, false, `#my\.field`},
		{"name", ByName, "login", false, false, `[name="login"]`},
		{"name with quote", ByName, `a"b`, false, false, `[name="a\"b"]`},
		{"xpath absolute", ByXPath, "//input[@name='post']", false, true, "//input[@name='post']"},
		{"xpath relative", ByXPath, "//input[@name='post']", true, true, ".//input[@name='post']"},
		{"partial link text", ByPartialLinkText, "Logout", false, true, "//a[contains(., 'Logout')]"},
		{"partial link text relative", ByPartialLinkText, "Tools", true, true, ".//a[contains(., 'Tools')]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := buildQuery(tt.kind, tt.value, tt.relative)
			if err != nil {
				t.Fatalf("buildQuery returned error: %v", err)
			}
			if q.xpath != tt.xpath {
				t.Errorf("xpath = %v, want %v", q.xpath, tt.xpath)
			}
			if q.expr != tt.expr {
				t.Errorf("expr = %q, want %q", q.expr, tt.expr)
			}
		})
	}
}

func TestBuildQueryUnknownKind(t *testing.T) {
	if _, err := buildQuery(Kind("bogus"), "x", false); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestXPathLiteral(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Logout", "'Logout'"},
		{"it's", `"it's"`},
		{`say "hi"`, `'say "hi"'`},
		{`both ' and "`, `concat('both ', "'", ' and "')`},
	}
	for _, tt := range tests {
		if got := xpathLiteral(tt.in); got != tt.want {
			t.Errorf("xpathLiteral(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestEscapeCSSSelector(t *testing.T) {
	if got := escapeCSSSelector("a.b:c"); got != `a\.b\:c` {
		t.Errorf("escapeCSSSelector = %q", got)
	}
	if got := escapeCSSSelector("plain"); got != "plain" {
		t.Errorf("escapeCSSSelector altered plain input: %q", got)
	}
}
