package handlers

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"

	"meetsync/cron"
)

type fakeEnqueuer struct {
	err   error
	tasks []*asynq.Task
}

func (f *fakeEnqueuer) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{}, nil
}

func postWebhook(t *testing.T, queue TaskEnqueuer, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/webhook/inbound", NewWebhookHandler(queue).InboundWebhookHandler)

	req := httptest.NewRequest(http.MethodPost, "/api/webhook/inbound", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func pushEnvelope(t *testing.T, historyID uint64) []byte {
	t.Helper()
	notif, err := json.Marshal(map[string]any{
		"emailAddress": "host@example.com",
		"historyId":    historyID,
	})
	if err != nil {
		t.Fatal(err)
	}
	envelope, err := json.Marshal(map[string]any{
		"message": map[string]any{
			"data":      base64.StdEncoding.EncodeToString(notif),
			"messageId": "pubsub-1",
		},
		"subscription": "projects/p/subscriptions/s",
	})
	if err != nil {
		t.Fatal(err)
	}
	return envelope
}

func TestInboundWebhookAcksAndEnqueues(t *testing.T) {
	queue := &fakeEnqueuer{}
	w := postWebhook(t, queue, pushEnvelope(t, 4711))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if len(queue.tasks) != 1 {
		t.Fatalf("enqueued %d tasks, want 1", len(queue.tasks))
	}
	task := queue.tasks[0]
	if task.Type() != cron.TypeInboundHistory {
		t.Errorf("task type = %q", task.Type())
	}
	var payload cron.InboundHistoryPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		t.Fatalf("bad payload: %v", err)
	}
	if payload.HistoryID != 4711 {
		t.Errorf("historyId = %d, want 4711", payload.HistoryID)
	}
}

func TestInboundWebhookAcksMalformedEnvelope(t *testing.T) {
	queue := &fakeEnqueuer{}
	w := postWebhook(t, queue, []byte(`{"not":"a push"}`))

	// Nothing processable, but redelivery would not help: ack it.
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}
	if len(queue.tasks) != 0 {
		t.Error("malformed envelope must not enqueue")
	}
}

func TestInboundWebhookAcksUndecodableData(t *testing.T) {
	queue := &fakeEnqueuer{}
	body := []byte(`{"message":{"data":"%%%not-base64%%%"},"subscription":"s"}`)
	w := postWebhook(t, queue, body)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}
}

func TestInboundWebhookRefusesAckOnEnqueueFailure(t *testing.T) {
	queue := &fakeEnqueuer{err: errors.New("redis down")}
	w := postWebhook(t, queue, pushEnvelope(t, 4711))

	// A non-2xx response makes the broker redeliver the notification.
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
}
