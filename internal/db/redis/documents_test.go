package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	"github.com/kailas-cloud/tenderiq/internal/db"
)

func TestPutDocument_AnalysisExpires(t *testing.T) {
	s, c := newMockStore(t)
	c.EXPECT().
		Do(gomock.Any(), mock.Match("SET", "tenderiq:analysis:t1", `{"score":82}`, "EX", "86400")).
		Return(mock.Result(mock.RedisString("OK")))

	err := s.PutDocument(context.Background(), "tenderiq:analysis:t1", []byte(`{"score":82}`), 24*time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPutDocument_SynopsisKeptWithoutTTL(t *testing.T) {
	s, c := newMockStore(t)
	c.EXPECT().
		Do(gomock.Any(), mock.Match("SET", "tenderiq:bid-synopsis-t1", `{"tender_id":"t1"}`)).
		Return(mock.Result(mock.RedisString("OK")))

	err := s.PutDocument(context.Background(), "tenderiq:bid-synopsis-t1", []byte(`{"tender_id":"t1"}`), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPutDocument_Error(t *testing.T) {
	s, c := newMockStore(t)
	c.EXPECT().Do(gomock.Any(), gomock.Any()).Return(mock.ErrorResult(errors.New("READONLY")))

	err := s.PutDocument(context.Background(), "tenderiq:analysis:t1", []byte("{}"), time.Hour)
	assertDBError(t, err, db.OpSet, "tenderiq:analysis:t1")
}

func TestGetDocument(t *testing.T) {
	s, c := newMockStore(t)
	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "tenderiq:analysis:t1")).
		Return(mock.Result(mock.RedisString(`{"score":82}`)))

	got, err := s.GetDocument(context.Background(), "tenderiq:analysis:t1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != `{"score":82}` {
		t.Errorf("got %s", got)
	}
}

func TestGetDocument_ExpiredAnalysis(t *testing.T) {
	s, c := newMockStore(t)
	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "tenderiq:analysis:t1")).
		Return(mock.Result(mock.RedisNil()))

	_, err := s.GetDocument(context.Background(), "tenderiq:analysis:t1")
	if !errors.Is(err, db.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestGetDocument_Error(t *testing.T) {
	s, c := newMockStore(t)
	c.EXPECT().Do(gomock.Any(), gomock.Any()).Return(mock.ErrorResult(context.Canceled))

	_, err := s.GetDocument(context.Background(), "tenderiq:bid-synopsis-t1")
	assertDBError(t, err, db.OpGet, "tenderiq:bid-synopsis-t1")
	if errors.Is(err, db.ErrKeyNotFound) {
		t.Error("transport error must not read as a miss")
	}
}

func TestDeleteDocument_MissingIsNotAnError(t *testing.T) {
	s, c := newMockStore(t)
	c.EXPECT().
		Do(gomock.Any(), mock.Match("DEL", "tenderiq:bid-synopsis-t1")).
		Return(mock.Result(mock.RedisInt64(0)))

	if err := s.DeleteDocument(context.Background(), "tenderiq:bid-synopsis-t1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
