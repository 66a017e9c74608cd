package selection

import (
	"testing"
)

func TestParseMapForm(t *testing.T) {
	sel, err := Parse([]byte("chicken_rice: 4\nbeef_chili: 2\n"), "test")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(sel) != 2 || sel["chicken_rice"] != 4 || sel["beef_chili"] != 2 {
		t.Errorf("Unexpected selection: %v", sel)
	}
}

func TestParseListForm(t *testing.T) {
	data := `
- id: chicken_rice
  count: 4
- id: roast_veg
`
	sel, err := Parse([]byte(data), "test")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if sel["chicken_rice"] != 4 {
		t.Errorf("Expected count 4 for chicken_rice, got %d", sel["chicken_rice"])
	}
	if sel["roast_veg"] != 1 {
		t.Errorf("Expected default count 1 for roast_veg, got %d", sel["roast_veg"])
	}
}

func TestParseListFormMissingID(t *testing.T) {
	if _, err := Parse([]byte("- count: 2\n"), "test"); err == nil {
		t.Fatal("Expected an error for a list entry without an id")
	}
}

func TestParseUnsupportedFormat(t *testing.T) {
	if _, err := Parse([]byte("just a string\n"), "test"); err == nil {
		t.Fatal("Expected an error for a scalar selection document")
	}
}

func TestParseTokens(t *testing.T) {
	sel, err := ParseTokens([]string{"chicken_rice:4", "roast_veg:6"})
	if err != nil {
		t.Fatalf("ParseTokens failed: %v", err)
	}
	if sel["chicken_rice"] != 4 || sel["roast_veg"] != 6 {
		t.Errorf("Unexpected selection: %v", sel)
	}
}

func TestParseTokensRejectsBadShape(t *testing.T) {
	if _, err := ParseTokens([]string{"chicken_rice"}); err == nil {
		t.Fatal("Expected an error for a token without a count")
	}
	if _, err := ParseTokens([]string{"chicken_rice:lots"}); err == nil {
		t.Fatal("Expected an error for a non-integer count")
	}
}
