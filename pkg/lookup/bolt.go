package lookup

import (
	"errors"
	"fmt"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

// DefaultNamespace is the bucket used when no namespace is given.
const DefaultNamespace = "params"

// Bolt is a bbolt-backed store of parameter values. Each namespace is a
// bucket, so several task files can share one database.
type Bolt struct {
	db        *bolt.DB
	namespace []byte
	mu        sync.RWMutex
}

// OpenBolt opens (or creates) the database at path and its namespace bucket.
func OpenBolt(path, namespace string) (*Bolt, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(namespace)); err != nil {
			return fmt.Errorf("create bucket %s: %w", namespace, err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	return &Bolt{db: db, namespace: []byte(namespace)}, nil
}

func (s *Bolt) Lookup(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		value string
		found bool
	)
	_ = s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.namespace)
		if b == nil {
			return nil
		}
		if data := b.Get([]byte(name)); data != nil {
			value, found = string(data), true
		}
		return nil
	})
	return value, found
}

func (s *Bolt) Set(name, value string) error {
	if name == "" {
		return errors.New("empty key")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.namespace)
		if b == nil {
			return fmt.Errorf("namespace not found: %s", s.namespace)
		}
		return b.Put([]byte(name), []byte(value))
	})
}

// Delete forgets a stored value.
func (s *Bolt) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.namespace)
		if b == nil {
			return fmt.Errorf("namespace not found: %s", s.namespace)
		}
		return b.Delete([]byte(name))
	})
}

// List returns every stored value in the namespace.
func (s *Bolt) List() (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]string)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.namespace)
		if b == nil {
			return fmt.Errorf("namespace not found: %s", s.namespace)
		}
		return b.ForEach(func(k, v []byte) error {
			result[string(k)] = string(v)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Bolt) Close() error {
	return s.db.Close()
}
