package kvstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

type sqlRecord struct {
	Key       string    `gorm:"column:k;primaryKey;type:varchar(512) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin"`
	Value     []byte    `gorm:"column:v;type:longblob"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (sqlRecord) TableName() string {
	return "kv_records"
}

// SQLStore keeps the namespace in a single two-column table. The key column
// uses a binary collation so keys compare byte for byte. Prefix scans use
// LIKE on the primary key; Update takes a row lock with SELECT … FOR UPDATE.
type SQLStore struct {
	db *gorm.DB
}

func OpenMySQLStore(dsn string) (*SQLStore, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mysql: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return NewSQLStore(db)
}

func NewSQLStore(db *gorm.DB) (*SQLStore, error) {
	if err := db.AutoMigrate(&sqlRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate kv_records: %w", err)
	}
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	var rec sqlRecord
	err := s.db.WithContext(ctx).Where("k = ?", key).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sql get %q: %w", key, err)
	}
	return rec.Value, nil
}

func (s *SQLStore) GetMany(ctx context.Context, keys []string) (map[string][]byte, error) {
	out := make(map[string][]byte, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	var recs []sqlRecord
	if err := s.db.WithContext(ctx).Where("k IN ?", keys).Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("sql get many: %w", err)
	}
	for _, r := range recs {
		out[r.Key] = r.Value
	}
	return out, nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value any) error {
	b, err := encodeValue(value)
	if err != nil {
		return err
	}
	if err := upsert(s.db.WithContext(ctx), key, b); err != nil {
		return fmt.Errorf("sql set %q: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where("k = ?", key).Delete(&sqlRecord{}).Error; err != nil {
		return fmt.Errorf("sql delete %q: %w", key, err)
	}
	return nil
}

func (s *SQLStore) ScanPrefix(ctx context.Context, prefix string) ([]Entry, error) {
	var recs []sqlRecord
	err := s.db.WithContext(ctx).
		Where("k LIKE ? ESCAPE '!'", escapeLike(prefix)+"%").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("sql scan %q: %w", prefix, err)
	}
	out := make([]Entry, len(recs))
	for i, r := range recs {
		out[i] = Entry{Key: r.Key, Value: r.Value}
	}
	return out, nil
}

func (s *SQLStore) Apply(ctx context.Context, mutations ...Mutation) error {
	encoded, err := encodeMutations(mutations)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return applySQL(tx, encoded)
	})
}

func (s *SQLStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec sqlRecord
		found := true
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("k = ?", key).Take(&rec).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			found = false
		} else if err != nil {
			return fmt.Errorf("sql lock %q: %w", key, err)
		}

		mutations, err := fn(rec.Value, found)
		if err != nil {
			return err
		}
		encoded, err := encodeMutations(mutations)
		if err != nil {
			return err
		}
		return applySQL(tx, encoded)
	})
}

func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func applySQL(tx *gorm.DB, mutations []encodedMutation) error {
	for _, m := range mutations {
		if m.delete {
			if err := tx.Where("k = ?", m.key).Delete(&sqlRecord{}).Error; err != nil {
				return err
			}
			continue
		}
		if err := upsert(tx, m.key, m.value); err != nil {
			return err
		}
	}
	return nil
}

func upsert(db *gorm.DB, key string, value []byte) error {
	rec := sqlRecord{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	return db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
