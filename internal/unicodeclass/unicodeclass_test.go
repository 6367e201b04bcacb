package unicodeclass

import "testing"

func contains(ranges []Range, r rune) bool {
	for _, rg := range ranges {
		if r >= rg.Lo && r <= rg.Hi {
			return true
		}
	}
	return false
}

func TestQueryGeneralCategory(t *testing.T) {
	ranges, err := Query("general_category=decimal_number")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if !contains(ranges, '7') {
		t.Error("decimal_number should contain '7'")
	}
	if contains(ranges, 'a') {
		t.Error("decimal_number should not contain 'a'")
	}
}

func TestQueryBareKeyASCII(t *testing.T) {
	ranges, err := Query("ascii")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if !contains(ranges, 'z') {
		t.Error("ascii should contain 'z'")
	}
	if contains(ranges, 'α') {
		t.Error("ascii should not contain 'α'")
	}
}

func TestQueryScript(t *testing.T) {
	ranges, err := Query("Greek")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if !contains(ranges, 'α') {
		t.Error("Greek should contain 'α'")
	}
}

func TestQueryUnknownIsError(t *testing.T) {
	if _, err := Query("not_a_real_property"); err == nil {
		t.Error("expected an error for an unknown property name")
	}
}

func TestQueryIsCached(t *testing.T) {
	a, err := Query("alpha")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	b, err := Query("alpha")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(a) != len(b) {
		t.Error("cached result should be stable across calls")
	}
}
