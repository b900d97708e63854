package logger

import (
	"context"
	"sync"
	"testing"
	"time"

	common_models "go-unionreg/internal/common/models"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type recordingSink struct {
	mu   sync.Mutex
	logs []common_models.Log
}

func (s *recordingSink) InsertOne(_ context.Context, document interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, document.(common_models.Log))
	return nil
}

func TestDBCoreCopiesEntriesToWriter(t *testing.T) {
	sink := &recordingSink{}
	writer := NewDBLogWriter(sink, "test-app", 10)
	base, observed := observer.New(zapcore.InfoLevel)

	log := zap.New(NewDBCore(base, writer)).With(zap.String("actor_id", "user-1"))
	log.Info("decision recorded", zap.String("submission_id", "sub-9"))
	log.Debug("dropped below level")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := writer.Close(ctx); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if observed.Len() != 1 {
		t.Fatalf("console core saw %d entries, want 1", observed.Len())
	}
	if len(sink.logs) != 1 {
		t.Fatalf("sink received %d logs, want 1", len(sink.logs))
	}
	got := sink.logs[0]
	if got.Message != "decision recorded" || got.SubmissionID != "sub-9" || got.AppId != "test-app" || got.ActorID != "user-1" {
		t.Errorf("unexpected log record %+v", got)
	}
	if got.LogLevelId != 20 {
		t.Errorf("LogLevelId = %d, want 20", got.LogLevelId)
	}
}

func TestLoggingAfterCloseIsDropped(t *testing.T) {
	sink := &recordingSink{}
	writer := NewDBLogWriter(sink, "test-app", 10)
	base, _ := observer.New(zapcore.InfoLevel)
	log := zap.New(NewDBCore(base, writer))

	log.Info("before close")
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := writer.Close(ctx); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	log.Info("OnStop hook executed")
	log.Warn("late digest line")
	if err := writer.Close(ctx); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.logs) != 1 || sink.logs[0].Message != "before close" {
		t.Fatalf("sink logs = %+v, want only the entry written before Close", sink.logs)
	}
}

func TestConcurrentLoggingDuringClose(t *testing.T) {
	writer := NewDBLogWriter(&recordingSink{}, "test-app", 1000)
	base, _ := observer.New(zapcore.InfoLevel)
	log := zap.New(NewDBCore(base, writer))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				log.Info("request handled")
			}
		}()
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := writer.Close(ctx); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	wg.Wait()
}

func TestMapLevelToInt(t *testing.T) {
	tests := map[zapcore.Level]int{
		zapcore.DebugLevel: 10,
		zapcore.WarnLevel:  30,
		zapcore.ErrorLevel: 40,
		zapcore.PanicLevel: 20,
	}
	for level, want := range tests {
		if got := mapLevelToInt(level); got != want {
			t.Errorf("mapLevelToInt(%v) = %d, want %d", level, got, want)
		}
	}
}
