package model

import "testing"

func TestSortField_IsValid(t *testing.T) {
	tests := []struct {
		field    SortField
		expected bool
	}{
		{SortByName, true},
		{SortByPath, true},
		{SortByExt, true},
		{SortBySize, true},
		{SortByAccessed, true},
		{SortField("modified"), false},
		{SortField(""), false},
	}

	for _, test := range tests {
		result := test.field.IsValid()
		if result != test.expected {
			t.Errorf("IsValid() for %q = %v, expected %v", test.field, result, test.expected)
		}
	}
}

func TestParseSortField(t *testing.T) {
	tests := []struct {
		input    string
		expected SortField
	}{
		{"name", SortByName},
		{"path", SortByPath},
		{"extension", SortByExt},
		{"size", SortBySize},
		{"accessed", SortByAccessed},
		{"bogus", DefaultSortField},
		{"", DefaultSortField},
	}

	for _, test := range tests {
		result := ParseSortField(test.input)
		if result != test.expected {
			t.Errorf("ParseSortField(%q) = %s, expected %s", test.input, result, test.expected)
		}
	}
}
