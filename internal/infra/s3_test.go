package infra

import "testing"

func TestBuildPublicURL(t *testing.T) {
	c := &s3Client{bucket: "memo", host: "https://s3.example.com"}

	got := c.buildPublicURL("attempts/2025-05-02/abc/c0ffee-my attempt.webm")
	want := "https://s3.example.com/memo/attempts/2025-05-02/abc/c0ffee-my%20attempt.webm"
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}
