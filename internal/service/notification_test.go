package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"Habitual/internal/model"
	"Habitual/pkg/matrix"
)

func batchOf(sends ...model.NotificationSend) model.NotificationBatchMessage {
	return model.NotificationBatchMessage{
		MessageID: "notify_test",
		BatchID:   "batch_test",
		Sends:     sends,
	}
}

func TestDispatchBatch_AllSendsSettleDespiteFailure(t *testing.T) {
	client := matrix.NewMockClient()
	client.FailRooms["!bad:example.org"] = true
	svc := NewNotificationService(client, time.Second)

	msg := batchOf(
		model.NotificationSend{RoomID: "!a:example.org", Body: "one", Kind: model.NotifyKindReminder},
		model.NotificationSend{RoomID: "!bad:example.org", Body: "two", Kind: model.NotifyKindReminder},
		model.NotificationSend{RoomID: "!c:example.org", Body: "three", Kind: model.NotifyKindAllDone},
	)

	if err := svc.DispatchBatch(context.Background(), msg); err != nil {
		t.Fatalf("DispatchBatch returned error: %v", err)
	}

	if len(client.Sends) != 3 {
		t.Errorf("attempted %d sends, want all 3", len(client.Sends))
	}
	if client.Succeeded != 2 || client.Failed != 1 {
		t.Errorf("send outcomes = %d ok / %d failed, want 2 ok / 1 failed",
			client.Succeeded, client.Failed)
	}
	if !client.Connected || !client.Disconnected {
		t.Errorf("channel lifecycle = connect %v / disconnect %v, want both", client.Connected, client.Disconnected)
	}
}

func TestDispatchBatch_ConnectFailureAbandonsBatch(t *testing.T) {
	client := matrix.NewMockClient()
	client.ConnectErr = errors.New("homeserver unreachable")
	svc := NewNotificationService(client, time.Second)

	msg := batchOf(
		model.NotificationSend{RoomID: "!a:example.org", Body: "one", Kind: model.NotifyKindReminder},
	)

	// Abandoning the batch must not surface as an error; the next
	// sweep re-decides from current state.
	if err := svc.DispatchBatch(context.Background(), msg); err != nil {
		t.Fatalf("DispatchBatch returned error on connect failure: %v", err)
	}
	if len(client.Sends) != 0 {
		t.Errorf("attempted %d sends after failed connect, want 0", len(client.Sends))
	}
}

func TestDispatchBatch_EmptyBatchIsNoop(t *testing.T) {
	client := matrix.NewMockClient()
	svc := NewNotificationService(client, time.Second)

	if err := svc.DispatchBatch(context.Background(), batchOf()); err != nil {
		t.Fatalf("DispatchBatch returned error: %v", err)
	}
	if client.Connected {
		t.Error("empty batch should not connect the channel")
	}
}
