package logging

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultSlowThreshold = 200 * time.Millisecond

// gormLogger implements GORM's logger.Interface on top of zap.
type gormLogger struct {
	log           *zap.Logger
	slowThreshold time.Duration
}

// NewGormLogger returns a GORM logger writing through log.
func NewGormLogger(log *zap.Logger) logger.Interface {
	return &gormLogger{
		log:           log.Named("gorm").WithOptions(zap.AddCallerSkip(3)),
		slowThreshold: defaultSlowThreshold,
	}
}

// LogMode implements logger.Interface. Levels come from the zap logger.
func (l *gormLogger) LogMode(_ logger.LogLevel) logger.Interface {
	return l
}

func (l *gormLogger) Info(_ context.Context, msg string, data ...interface{}) {
	l.log.Info(fmt.Sprintf(msg, data...))
}

func (l *gormLogger) Warn(_ context.Context, msg string, data ...interface{}) {
	l.log.Warn(fmt.Sprintf(msg, data...))
}

func (l *gormLogger) Error(_ context.Context, msg string, data ...interface{}) {
	l.log.Error(fmt.Sprintf(msg, data...))
}

// Trace logs every statement at debug, slow statements at warn and failures
// at error. A missing record is not treated as a failure.
func (l *gormLogger) Trace(_ context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	fields := []zap.Field{
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("sql", sql),
	}

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		l.log.Error("database query failed", append(fields, zap.Error(err))...)
	case elapsed > l.slowThreshold:
		l.log.Warn("slow query detected", append(fields, zap.Duration("threshold", l.slowThreshold))...)
	default:
		l.log.Debug("database query completed", fields...)
	}
}
