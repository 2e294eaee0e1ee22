package common

import "testing"

func TestParseRef(t *testing.T) {
	cases := []struct {
		name       string
		ref        string
		wantBucket string
		wantKey    string
		wantErr    bool
	}{
		{"simple", "s3://submissions/a1/essay.txt", "submissions", "a1/essay.txt", false},
		{"nested key", "s3://lms-files/course-7/assignment-2/ben.html", "lms-files", "course-7/assignment-2/ben.html", false},
		{"wrong scheme", "https://example.com/essay.txt", "", "", true},
		{"missing key", "s3://bucket-only", "", "", true},
		{"empty bucket", "s3:///key.txt", "", "", true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			bucket, key, err := ParseRef(c.ref)
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", c.ref)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRef(%q) error: %v", c.ref, err)
			}
			if bucket != c.wantBucket || key != c.wantKey {
				t.Fatalf("ParseRef(%q) = (%q, %q); want (%q, %q)", c.ref, bucket, key, c.wantBucket, c.wantKey)
			}
		})
	}
}
