package render

import "testing"

func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"", ""},
		{"Hello, World!", "Hello, World!"},
		{"Tom & Jerry", "Tom &amp; Jerry"},
		{"<script>alert('xss')</script>", "&lt;script&gt;alert(&#39;xss&#39;)&lt;/script&gt;"},
		{`say "hello"`, "say &quot;hello&quot;"},
		{"Hello 世界 🌍", "Hello 世界 🌍"},
		{"&amp;", "&amp;amp;"},
	}
	for _, tt := range tests {
		if got := escapeHTML(tt.input); got != tt.want {
			t.Errorf("escapeHTML(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestEscapeAttr(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"plain", "plain"},
		{`a"b`, "a&quot;b"},
		{"line1\nline2", "line1&#10;line2"},
		{"tab\there", "tab&#9;here"},
		{"cr\rhere", "cr&#13;here"},
	}
	for _, tt := range tests {
		if got := escapeAttr(tt.input); got != tt.want {
			t.Errorf("escapeAttr(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
