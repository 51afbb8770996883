package storage

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/tasktimeline/core/pkg/errs"
	"github.com/tasktimeline/core/pkg/types"
	bolt "go.etcd.io/bbolt"
)

var (
	bucketTasks   = []byte("tasks")
	bucketReports = []byte("reports")
)

// BoltStore implements Store using BoltDB, for local single-node
// persistence (the in-process reference implementation of the otherwise
// external Task Store).
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore opens (creating if needed) a BoltDB file under dataDir.
func NewBoltStore(dataDir string) (*BoltStore, error) {
	dbPath := filepath.Join(dataDir, "scheduler.db")

	db, err := bolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketTasks, bucketReports} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Close() error { return s.db.Close() }

func (s *BoltStore) CreateTask(task *types.Task) error {
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now
	return s.putTask(task)
}

func (s *BoltStore) putTask(task *types.Task) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketTasks)
		data, err := json.Marshal(task)
		if err != nil {
			return err
		}
		return b.Put([]byte(task.ID), data)
	})
}

func (s *BoltStore) GetTask(id string) (*types.Task, error) {
	var task types.Task
	found := false
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketTasks)
		data := b.Get([]byte(id))
		if data == nil {
			return nil
		}
		found = true
		return json.Unmarshal(data, &task)
	})
	if err != nil {
		return nil, errs.Wrap(errs.StorageUnavailable, "boltstore.GetTask", "read failed", err)
	}
	if !found {
		return nil, errs.New(errs.NotFound, "boltstore.GetTask", "task not found").WithField("id")
	}
	return &task, nil
}

func (s *BoltStore) ListTasks(filter TaskFilter) ([]*types.Task, error) {
	var out []*types.Task
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketTasks)
		return b.ForEach(func(k, v []byte) error {
			var t types.Task
			if err := json.Unmarshal(v, &t); err != nil {
				return err
			}
			if matches(&t, filter) {
				out = append(out, &t)
			}
			return nil
		})
	})
	if err != nil {
		return nil, errs.Wrap(errs.StorageUnavailable, "boltstore.ListTasks", "scan failed", err)
	}
	return out, nil
}

func (s *BoltStore) UpdateTask(task *types.Task) error {
	existing, err := s.GetTask(task.ID)
	if err != nil {
		return err
	}
	task.CreatedAt = existing.CreatedAt
	task.UpdatedAt = time.Now().UTC()
	return s.putTask(task)
}

func (s *BoltStore) DeleteTask(id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketTasks)
		return b.Delete([]byte(id))
	})
}

func (s *BoltStore) CreateReport(report *types.Report) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketReports)
		data, err := json.Marshal(report)
		if err != nil {
			return err
		}
		return b.Put([]byte(report.ID), data)
	})
}

func (s *BoltStore) GetReport(id string) (*types.Report, error) {
	var report types.Report
	found := false
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketReports)
		data := b.Get([]byte(id))
		if data == nil {
			return nil
		}
		found = true
		return json.Unmarshal(data, &report)
	})
	if err != nil {
		return nil, errs.Wrap(errs.StorageUnavailable, "boltstore.GetReport", "read failed", err)
	}
	if !found {
		return nil, errs.New(errs.NotFound, "boltstore.GetReport", "report not found").WithField("id")
	}
	return &report, nil
}

func (s *BoltStore) GetReportByUserDate(userID string, date time.Time) (*types.Report, error) {
	var found *types.Report
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketReports)
		return b.ForEach(func(k, v []byte) error {
			var r types.Report
			if err := json.Unmarshal(v, &r); err != nil {
				return err
			}
			if r.UserID == userID && r.Date.Equal(date) {
				found = &r
			}
			return nil
		})
	})
	if err != nil {
		return nil, errs.Wrap(errs.StorageUnavailable, "boltstore.GetReportByUserDate", "scan failed", err)
	}
	if found == nil {
		return nil, errs.New(errs.NotFound, "boltstore.GetReportByUserDate", "no report for user/date")
	}
	return found, nil
}

func (s *BoltStore) ListReportsByUser(userID string) ([]*types.Report, error) {
	var out []*types.Report
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketReports)
		return b.ForEach(func(k, v []byte) error {
			var r types.Report
			if err := json.Unmarshal(v, &r); err != nil {
				return err
			}
			if r.UserID == userID {
				out = append(out, &r)
			}
			return nil
		})
	})
	if err != nil {
		return nil, errs.Wrap(errs.StorageUnavailable, "boltstore.ListReportsByUser", "scan failed", err)
	}
	return out, nil
}
