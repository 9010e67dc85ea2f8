package slack_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/kottos/pkg/service/slack"
	slackapi "github.com/slack-go/slack"
)

func TestNew(t *testing.T) {
	t.Run("returns error when token is empty", func(t *testing.T) {
		_, err := slack.New("")
		gt.Value(t, err).NotNil()
	})

	t.Run("creates service when token is provided", func(t *testing.T) {
		svc, err := slack.New("test-token")
		gt.NoError(t, err).Required()
		gt.Value(t, svc).NotNil()
	})
}

func TestPostMessage(t *testing.T) {
	var form url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		form, _ = url.ParseQuery(string(body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"channel":"C123","ts":"1700000000.000100"}`))
	}))
	defer srv.Close()

	svc, err := slack.New("test-token", slack.WithAPIURL(srv.URL+"/"))
	gt.NoError(t, err).Required()

	blocks := []slackapi.Block{
		slackapi.NewSectionBlock(slackapi.NewTextBlockObject(slackapi.MarkdownType, "hello", false, false), nil, nil),
	}
	ts, err := svc.PostMessage(context.Background(), "C123", blocks, "hello")
	gt.NoError(t, err).Required()
	gt.Value(t, ts).Equal("1700000000.000100")
	gt.Value(t, form.Get("channel")).Equal("C123")
	gt.Value(t, form.Get("text")).Equal("hello")

	t.Run("channel is required", func(t *testing.T) {
		_, err := svc.PostMessage(context.Background(), "", blocks, "hello")
		gt.Error(t, err)
	})
}

func TestTruncateToMaxBytes(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		limit int
		want  string
	}{
		{name: "short string is kept", input: "abc", limit: 10, want: "abc"},
		{name: "ascii is cut at limit", input: "abcdef", limit: 4, want: "abcd"},
		{name: "multibyte rune is not split", input: "aあい", limit: 5, want: "aあ"},
		{name: "zero limit", input: "abc", limit: 0, want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gt.Value(t, slack.TruncateToMaxBytes(tc.input, tc.limit)).Equal(tc.want)
		})
	}
}
