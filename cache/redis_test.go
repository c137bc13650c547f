package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/ZaguanLabs/gotrans"
	"github.com/go-redis/redismock/v9"
)

func TestRedisCache_Get_Hit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	cache := NewRedisCacheFromClient(db, "")

	mock.ExpectHGet("es", "hello").SetVal("hola")

	val, ok, err := cache.Get(context.Background(), "es", "hello")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok {
		t.Error("Expected cache hit")
	}
	if val != "hola" {
		t.Errorf("Expected 'hola', got %q", val)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestRedisCache_Get_Miss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	cache := NewRedisCacheFromClient(db, "")

	mock.ExpectHGet("es", "hello").RedisNil()

	val, ok, err := cache.Get(context.Background(), "es", "hello")
	if err != nil {
		t.Fatalf("miss must not be an error, got %v", err)
	}
	if ok {
		t.Error("Expected cache miss")
	}
	if val != "" {
		t.Errorf("Expected empty string, got %q", val)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestRedisCache_Get_Error(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	cache := NewRedisCacheFromClient(db, "")

	mock.ExpectHGet("es", "hello").SetErr(errors.New("connection refused"))

	_, ok, err := cache.Get(context.Background(), "es", "hello")
	if err == nil {
		t.Fatal("Expected an error")
	}
	if ok {
		t.Error("failed read must not report a hit")
	}

	var cacheErr *gotrans.CacheError
	if !errors.As(err, &cacheErr) {
		t.Fatalf("Expected *gotrans.CacheError, got %T", err)
	}
	if cacheErr.Op != "get" {
		t.Errorf("Expected op 'get', got %q", cacheErr.Op)
	}
}

func TestRedisCache_Set(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	cache := NewRedisCacheFromClient(db, "")

	mock.ExpectHSet("es", "hello", "hola").SetVal(1)

	if err := cache.Set(context.Background(), "es", "hello", "hola"); err != nil {
		t.Errorf("Set failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestRedisCache_Set_Error(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	cache := NewRedisCacheFromClient(db, "")

	mock.ExpectHSet("es", "hello", "hola").SetErr(errors.New("READONLY"))

	err := cache.Set(context.Background(), "es", "hello", "hola")
	var cacheErr *gotrans.CacheError
	if !errors.As(err, &cacheErr) || cacheErr.Op != "set" {
		t.Errorf("Expected set CacheError, got %v", err)
	}
}

func TestRedisCache_KeyPrefix(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	cache := NewRedisCacheFromClient(db, "gotrans:")

	mock.ExpectHGet("gotrans:de", "cat").SetVal("Katze")

	val, ok, err := cache.Get(context.Background(), "de", "cat")
	if err != nil || !ok || val != "Katze" {
		t.Errorf("Expected 'Katze', got %q (ok=%v, err=%v)", val, ok, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestRedisCache_Ping(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	cache := NewRedisCacheFromClient(db, "")

	mock.ExpectPing().SetVal("PONG")

	if err := cache.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestRedisCache_SessionWithoutClient(t *testing.T) {
	cache := &RedisCache{}

	if _, _, err := cache.Session(context.Background()); err == nil {
		t.Error("Expected an error for a cache without client")
	}
}

func TestRedisCache_Close(t *testing.T) {
	db, _ := redismock.NewClientMock()

	cache := NewRedisCacheFromClient(db, "")

	if err := cache.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}
