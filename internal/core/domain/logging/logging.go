package logging

import "context"

type LogEntry struct {
	Key   string
	Value interface{}
}

func Entry(k string, v interface{}) LogEntry {
	return LogEntry{Key: k, Value: v}
}

type Logger interface {
	Debug(ctx context.Context, msg string, entries ...LogEntry)
	Info(ctx context.Context, msg string, entries ...LogEntry)
	Warning(ctx context.Context, msg string, entries ...LogEntry)
	Error(ctx context.Context, msg string, entries ...LogEntry)
}

// Error logs err at error level, skipping context cancellation which is
// not an application failure.
func Error(ctx context.Context, log Logger, err error, entries ...LogEntry) {
	if err == nil || ctx.Err() != nil {
		return
	}
	log.Error(ctx, err.Error(), append(entries, Entry("err", err))...)
}
