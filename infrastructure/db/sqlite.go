package db

import (
	"context"
	"time"

	"github.com/prasetyowira/qrgen/constant"
	"github.com/prasetyowira/qrgen/domain/generator"
	appLogger "github.com/prasetyowira/qrgen/infrastructure/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// SQLiteRepository implements generator.Repository
type SQLiteRepository struct {
	db  *gorm.DB
	log *appLogger.Logger
}

// GenerationModel is the GORM model for a recorded generation
type GenerationModel struct {
	ID          uint   `gorm:"primaryKey"`
	Data        string `gorm:"not null"`
	Path        string `gorm:"not null"`
	Styled      bool
	DrawerStyle string
	ColorMask   string
	CreatedAt   time.Time
}

// GormLogger implements GORM's logger.Interface on top of the injected
// application logger
type GormLogger struct {
	log *appLogger.Logger
}

// LogMode implements the log.Interface method
func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	return l
}

// Info logs info messages
func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	l.log.CtxInfo(ctx, msg, appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataData: data,
		},
	})
}

// Warn logs warn messages
func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	l.log.CtxWarn(ctx, msg, appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataData: data,
		},
	})
}

// Error logs error messages
func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	l.log.CtxError(ctx, msg, appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Error: &appLogger.CustomError{
			Code:    constant.ErrCodeDBGeneral,
			Message: msg,
			Type:    constant.ErrTypeDB,
		},
		Data: map[string]interface{}{
			constant.DataData: data,
		},
	})
}

// Trace logs SQL operations
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	if err != nil {
		l.log.CtxError(ctx, "SQL error", appLogger.LoggerInfo{
			ContextFunction: constant.CtxDB,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBGeneral,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataElapsed: elapsed.String(),
				constant.DataRows:    rows,
				constant.DataSQL:     sql,
			},
		})
		return
	}

	l.log.CtxDebug(ctx, "SQL query", appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataElapsed: elapsed.String(),
			constant.DataRows:    rows,
			constant.DataSQL:     sql,
		},
	})
}

// NewSQLiteRepository creates a new SQLite history repository
func NewSQLiteRepository(dbPath string, log *appLogger.Logger) (*SQLiteRepository, error) {
	log.Debug("Opening SQLite database", appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataPath: dbPath,
		},
	})

	gdb, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: &GormLogger{log: log},
	})
	if err != nil {
		log.Error("Failed to open database", appLogger.LoggerInfo{
			ContextFunction: constant.CtxDB,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBOpen,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataPath: dbPath,
			},
		})
		return nil, err
	}

	if err := gdb.AutoMigrate(&GenerationModel{}); err != nil {
		log.Error("Failed to migrate database schema", appLogger.LoggerInfo{
			ContextFunction: constant.CtxDB,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBMigrate,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
		})
		return nil, err
	}

	log.Info("History database initialized", appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataPath: dbPath,
		},
	})

	return &SQLiteRepository{db: gdb, log: log}, nil
}

// Store persists one generation record
func (r *SQLiteRepository) Store(ctx context.Context, gen *generator.Generation) error {
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO generation_models (data, path, styled, drawer_style, color_mask, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		gen.Data, gen.Path, gen.Styled, gen.DrawerStyle, gen.ColorMask, gen.CreatedAt)

	if result.Error != nil {
		r.log.CtxError(ctx, "Failed to insert generation record", appLogger.LoggerInfo{
			ContextFunction: constant.CtxStore,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBInsert,
				Message: result.Error.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataOutputPath: gen.Path,
			},
		})
		return result.Error
	}

	r.log.CtxDebug(ctx, "Generation recorded", appLogger.LoggerInfo{
		ContextFunction: constant.CtxStore,
		Data: map[string]interface{}{
			constant.DataOutputPath: gen.Path,
		},
	})

	return nil
}

// FindRecent returns up to limit generations, newest first
func (r *SQLiteRepository) FindRecent(ctx context.Context, limit int) ([]generator.Generation, error) {
	rows, err := r.db.WithContext(ctx).Raw(
		`SELECT id, data, path, styled, drawer_style, color_mask, created_at FROM generation_models ORDER BY created_at DESC, id DESC LIMIT ?`,
		limit).Rows()
	if err != nil {
		r.log.CtxError(ctx, "Database error while listing generations", appLogger.LoggerInfo{
			ContextFunction: constant.CtxFindRecent,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBLookup,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataLimit: limit,
			},
		})
		return nil, err
	}
	defer rows.Close()

	var generations []generator.Generation
	for rows.Next() {
		var model GenerationModel
		if err := r.db.ScanRows(rows, &model); err != nil {
			r.log.CtxError(ctx, "Failed to scan database rows", appLogger.LoggerInfo{
				ContextFunction: constant.CtxFindRecent,
				Error: &appLogger.CustomError{
					Code:    constant.ErrCodeDBScanRows,
					Message: err.Error(),
					Type:    constant.ErrTypeDB,
				},
			})
			return nil, err
		}
		generations = append(generations, generator.Generation{
			ID:          model.ID,
			Data:        model.Data,
			Path:        model.Path,
			Styled:      model.Styled,
			DrawerStyle: model.DrawerStyle,
			ColorMask:   model.ColorMask,
			CreatedAt:   model.CreatedAt,
		})
	}

	if err := rows.Err(); err != nil {
		r.log.CtxError(ctx, "Row iteration error", appLogger.LoggerInfo{
			ContextFunction: constant.CtxFindRecent,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBRowIterate,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
		})
		return nil, err
	}

	return generations, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		r.log.Error("Failed to get database connection", appLogger.LoggerInfo{
			ContextFunction: constant.CtxClose,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBClose,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
		})
		return err
	}

	r.log.Info("Closing history database", appLogger.LoggerInfo{
		ContextFunction: constant.CtxClose,
	})

	return sqlDB.Close()
}
