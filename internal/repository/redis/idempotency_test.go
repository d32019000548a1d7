package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

func newIdem(t *testing.T) *IdempotencyStore {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return NewIdempotencyStore(rdb, time.Hour)
}

func TestIdempotency_LockThenResult(t *testing.T) {
	s := newIdem(t)
	ctx := context.Background()
	key := "cookite:idem:reservations:k-123"

	// Nothing stored yet.
	if _, ok, err := s.GetResult(ctx, key); err != nil || ok {
		t.Fatalf("GetResult on empty key = (ok=%v, err=%v)", ok, err)
	}

	locked, err := s.AcquireLock(ctx, key, time.Minute)
	if err != nil || !locked {
		t.Fatalf("AcquireLock() = (%v, %v), want locked", locked, err)
	}

	// A second attempt cannot take the lock.
	if locked, _ := s.AcquireLock(ctx, key, time.Minute); locked {
		t.Error("second AcquireLock succeeded while held")
	}

	// While locked there is no result to replay.
	if _, ok, _ := s.GetResult(ctx, key); ok {
		t.Error("GetResult returned a payload for a LOCK marker")
	}

	payload := `{"success":true,"reservationId":"CKJP000001"}`
	if err := s.SaveResult(ctx, key, payload); err != nil {
		t.Fatalf("SaveResult() error = %v", err)
	}

	got, ok, err := s.GetResult(ctx, key)
	if err != nil || !ok {
		t.Fatalf("GetResult() = (ok=%v, err=%v), want stored payload", ok, err)
	}
	if got != payload {
		t.Errorf("GetResult() = %q, want %q", got, payload)
	}
}

func TestIdempotency_ReleaseUnblocksRetry(t *testing.T) {
	s := newIdem(t)
	ctx := context.Background()
	key := "cookite:idem:reservations:k-456"

	if locked, _ := s.AcquireLock(ctx, key, time.Minute); !locked {
		t.Fatal("initial AcquireLock failed")
	}
	if err := s.Release(ctx, key); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if locked, _ := s.AcquireLock(ctx, key, time.Minute); !locked {
		t.Error("AcquireLock after Release failed")
	}
}
