package logger

import (
	"go.uber.org/zap/zapcore"
)

// DBCore is a custom Zap Core that copies every entry to the DB log writer
type DBCore struct {
	zapcore.Core
	writer  *DBLogWriter
	context []zapcore.Field
}

// NewDBCore wraps an existing core (like console logger) and adds DB logging
func NewDBCore(baseCore zapcore.Core, writer *DBLogWriter) zapcore.Core {
	return &DBCore{
		Core:   baseCore,
		writer: writer,
	}
}

// With keeps the DB writer attached to child loggers
func (c *DBCore) With(fields []zapcore.Field) zapcore.Core {
	return &DBCore{
		Core:    c.Core.With(fields),
		writer:  c.writer,
		context: append(append([]zapcore.Field{}, c.context...), fields...),
	}
}

// Write is called for every log entry
func (c *DBCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	var actorID, submissionID string
	for _, f := range append(append([]zapcore.Field{}, c.context...), fields...) {
		if f.Type != zapcore.StringType {
			continue
		}
		switch f.Key {
		case "actor_id":
			actorID = f.String
		case "submission_id":
			submissionID = f.String
		}
	}

	// Caller.Function is only populated when the logger is built with AddCaller()
	c.writer.AddLog(LogEntry{
		Level:        entry.Level,
		Message:      entry.Message,
		ActorID:      actorID,
		SubmissionID: submissionID,
		Caller:       entry.Caller.Function,
	})

	return c.Core.Write(entry, fields)
}

// Check decides if we should log this level
func (c *DBCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}
