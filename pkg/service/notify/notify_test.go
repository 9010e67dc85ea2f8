package notify_test

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/kottos/pkg/domain/model"
	"github.com/secmon-lab/kottos/pkg/service/notify"
	"github.com/slack-go/slack"
)

func TestFeed(t *testing.T) {
	ctx := context.Background()
	feed := notify.NewFeed(3)

	for i := range 5 {
		feed.Notify(ctx, model.NewSuccess("message "+strconv.Itoa(i)))
	}

	recent := feed.Recent(0)
	gt.Array(t, recent).Length(3)
	gt.Value(t, recent[0].Message).Equal("message 4")
	gt.Value(t, recent[2].Message).Equal("message 2")

	gt.Array(t, feed.Recent(1)).Length(1)
	gt.Array(t, notify.NewFeed(0).Recent(10)).Length(0)
}

type postedMessage struct {
	channelID string
	text      string
	blocks    int
}

type mockSlack struct {
	mu     sync.Mutex
	posted []postedMessage
	done   chan struct{}
}

func (m *mockSlack) PostMessage(ctx context.Context, channelID string, blocks []slack.Block, text string) (string, error) {
	m.mu.Lock()
	m.posted = append(m.posted, postedMessage{channelID: channelID, text: text, blocks: len(blocks)})
	m.mu.Unlock()
	m.done <- struct{}{}
	return "1700000000.000100", nil
}

func TestSlack(t *testing.T) {
	ctx := context.Background()

	t.Run("posts notification in background", func(t *testing.T) {
		svc := &mockSlack{done: make(chan struct{}, 1)}
		n, err := notify.NewSlack(svc, "C123")
		gt.NoError(t, err).Required()

		n.Notify(ctx, model.NewSuccess("Control category created successfully"))

		select {
		case <-svc.done:
		case <-time.After(5 * time.Second):
			t.Fatal("notification was not posted")
		}

		svc.mu.Lock()
		defer svc.mu.Unlock()
		gt.Array(t, svc.posted).Length(1)
		gt.Value(t, svc.posted[0].channelID).Equal("C123")
		gt.Value(t, svc.posted[0].text).Equal(":white_check_mark: Control category created successfully")
		gt.Value(t, svc.posted[0].blocks).Equal(2)
	})

	t.Run("errors only skips success", func(t *testing.T) {
		svc := &mockSlack{done: make(chan struct{}, 2)}
		n, err := notify.NewSlack(svc, "C123", notify.WithErrorsOnly())
		gt.NoError(t, err).Required()

		n.Notify(ctx, model.NewSuccess("ignored"))
		n.Notify(ctx, model.NewFailure("Failed to upload image"))

		select {
		case <-svc.done:
		case <-time.After(5 * time.Second):
			t.Fatal("notification was not posted")
		}

		svc.mu.Lock()
		defer svc.mu.Unlock()
		gt.Array(t, svc.posted).Length(1)
		gt.Value(t, svc.posted[0].text).Equal(":x: Failed to upload image")
	})

	t.Run("channel is required", func(t *testing.T) {
		_, err := notify.NewSlack(&mockSlack{}, "")
		gt.Error(t, err)
	})
}

type recorder struct {
	got []model.Notification
}

func (r *recorder) Notify(ctx context.Context, n model.Notification) {
	r.got = append(r.got, n)
}

func TestMulti(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	multi := notify.Multi{a, nil, notify.Log{}, b}

	multi.Notify(context.Background(), model.NewFailure("boom"))

	gt.Array(t, a.got).Length(1)
	gt.Array(t, b.got).Length(1)
	gt.Value(t, b.got[0].Message).Equal("boom")
}
