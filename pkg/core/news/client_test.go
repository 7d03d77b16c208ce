package news

import (
	"context"
	"testing"
)

func TestStripHTML(t *testing.T) {
	cases := map[string]string{
		"<b>삼성전자</b> 실적 발표":       "삼성전자 실적 발표",
		"plain text":               "plain text",
		"&quot;quoted&quot; title": "\"quoted\" title",
		"a <b>b</b> &amp; c":       "a b & c",
		"  padded  ":               "padded",
	}
	for in, want := range cases {
		if got := StripHTML(in); got != want {
			t.Errorf("StripHTML(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSourceFromLink(t *testing.T) {
	cases := map[string]string{
		"https://www.hankyung.com/article/123": "hankyung.com",
		"https://n.news.naver.com/article/x":   "n.news.naver.com",
		"not a url":                            "",
	}
	for in, want := range cases {
		if got := sourceFromLink(in); got != want {
			t.Errorf("sourceFromLink(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSearchUnconfigured(t *testing.T) {
	c := NewClient("key", "", "", "")
	if _, err := c.Search(context.Background(), "삼성전자", 5); err == nil {
		t.Error("Expected error when news search is not configured")
	}
}
