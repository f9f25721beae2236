package clipback

import "testing"

func TestEscapeForScript(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`plain`, `plain`},
		{`say "hi"`, `say \"hi\"`},
		{`back\slash`, `back\\slash`},
		{"line\nbreak", `line\nbreak`},
		{"tab\there", `tab\there`},
		{"bell\x07gone", "bellgone"},
	}
	for _, tc := range cases {
		if got := EscapeForScript(tc.in); got != tc.want {
			t.Fatalf("EscapeForScript(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestValidatePath(t *testing.T) {
	if err := ValidatePath("/tmp/ok/file.png"); err != nil {
		t.Fatalf("expected valid path, got %v", err)
	}
	if err := ValidatePath("/tmp/../etc/passwd"); err == nil {
		t.Fatalf("expected traversal rejection")
	}
	if err := ValidatePath("/tmp/\x00bad"); err == nil {
		t.Fatalf("expected NUL rejection")
	}

	long := make([]byte, maxPathLen+1)
	for i := range long {
		long[i] = 'a'
	}
	if err := ValidatePath(string(long)); err == nil {
		t.Fatalf("expected length rejection")
	}
}

func TestHumanFileSize(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{3 << 20, "3.0 MB"},
	}
	for _, tc := range cases {
		if got := HumanFileSize(tc.in); got != tc.want {
			t.Fatalf("HumanFileSize(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
