package kvstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// firestoreRecord is the document shape: the original key (document ids
// cannot hold '/') and the JSON value as text.
type firestoreRecord struct {
	Key       string    `firestore:"key"`
	Value     string    `firestore:"value"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

// FirestoreStore keeps every record as one document of a single collection.
// Prefix scans are range queries on the key field.
type FirestoreStore struct {
	client     *firestore.Client
	collection string
}

func NewFirestoreStore(client *firestore.Client, collection string) *FirestoreStore {
	return &FirestoreStore{
		client:     client,
		collection: collection,
	}
}

func (s *FirestoreStore) doc(key string) *firestore.DocumentRef {
	return s.client.Collection(s.collection).Doc(docID(key))
}

func (s *FirestoreStore) Get(ctx context.Context, key string) ([]byte, error) {
	snap, err := s.doc(key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("firestore get %q: %w", key, err)
	}
	return recordValue(snap)
}

func (s *FirestoreStore) GetMany(ctx context.Context, keys []string) (map[string][]byte, error) {
	out := make(map[string][]byte, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	refs := make([]*firestore.DocumentRef, len(keys))
	for i, k := range keys {
		refs[i] = s.doc(k)
	}
	snaps, err := s.client.GetAll(ctx, refs)
	if err != nil {
		return nil, fmt.Errorf("firestore get all: %w", err)
	}
	for i, snap := range snaps {
		if !snap.Exists() {
			continue
		}
		v, err := recordValue(snap)
		if err != nil {
			return nil, err
		}
		out[keys[i]] = v
	}
	return out, nil
}

func (s *FirestoreStore) Set(ctx context.Context, key string, value any) error {
	b, err := encodeValue(value)
	if err != nil {
		return err
	}
	if _, err := s.doc(key).Set(ctx, newRecord(key, b)); err != nil {
		return fmt.Errorf("firestore set %q: %w", key, err)
	}
	return nil
}

func (s *FirestoreStore) Delete(ctx context.Context, key string) error {
	if _, err := s.doc(key).Delete(ctx); err != nil {
		return fmt.Errorf("firestore delete %q: %w", key, err)
	}
	return nil
}

func (s *FirestoreStore) ScanPrefix(ctx context.Context, prefix string) ([]Entry, error) {
	query := s.client.Collection(s.collection).
		Where("key", ">=", prefix).
		Where("key", "<", prefix+"\uf8ff")

	iter := query.Documents(ctx)
	defer iter.Stop()

	var out []Entry
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("firestore scan %q: %w", prefix, err)
		}
		var rec firestoreRecord
		if err := snap.DataTo(&rec); err != nil {
			return nil, fmt.Errorf("firestore decode %s: %w", snap.Ref.ID, err)
		}
		if !strings.HasPrefix(rec.Key, prefix) {
			continue
		}
		out = append(out, Entry{Key: rec.Key, Value: []byte(rec.Value)})
	}
	return out, nil
}

func (s *FirestoreStore) Apply(ctx context.Context, mutations ...Mutation) error {
	encoded, err := encodeMutations(mutations)
	if err != nil {
		return err
	}
	err = s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		return s.queue(tx, encoded)
	})
	if err != nil {
		return fmt.Errorf("firestore apply: %w", err)
	}
	return nil
}

func (s *FirestoreStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	ref := s.doc(key)
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		var current []byte
		found := true

		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) != codes.NotFound {
				return fmt.Errorf("firestore get %q: %w", key, err)
			}
			found = false
		} else {
			current, err = recordValue(snap)
			if err != nil {
				return err
			}
		}

		mutations, err := fn(current, found)
		if err != nil {
			return err
		}
		encoded, err := encodeMutations(mutations)
		if err != nil {
			return err
		}
		return s.queue(tx, encoded)
	})
	if status.Code(err) == codes.Aborted {
		return ErrConflict
	}
	return err
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

func (s *FirestoreStore) queue(tx *firestore.Transaction, mutations []encodedMutation) error {
	for _, m := range mutations {
		ref := s.doc(m.key)
		if m.delete {
			if err := tx.Delete(ref); err != nil {
				return err
			}
			continue
		}
		if err := tx.Set(ref, newRecord(m.key, m.value)); err != nil {
			return err
		}
	}
	return nil
}

func newRecord(key string, value []byte) firestoreRecord {
	return firestoreRecord{
		Key:       key,
		Value:     string(value),
		UpdatedAt: time.Now().UTC(),
	}
}

func recordValue(snap *firestore.DocumentSnapshot) ([]byte, error) {
	var rec firestoreRecord
	if err := snap.DataTo(&rec); err != nil {
		return nil, fmt.Errorf("firestore decode %s: %w", snap.Ref.ID, err)
	}
	return []byte(rec.Value), nil
}

var docIDEscaper = strings.NewReplacer("%", "%25", "/", "%2F")

func docID(key string) string {
	return docIDEscaper.Replace(key)
}
