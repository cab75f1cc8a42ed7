package roster

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/evergreen-ci/pail"
	"github.com/mongodb/grip"
	"github.com/pkg/errors"

	"github.com/rudikone/TestExamples/model"
)

// BucketStore keeps one JSON document per character in a pail bucket,
// keyed by the character ID.
type BucketStore struct {
	bucket pail.Bucket
}

func NewBucketStore(bucket pail.Bucket) (*BucketStore, error) {
	if bucket == nil {
		return nil, errors.New("must specify a bucket")
	}
	return &BucketStore{bucket: bucket}, nil
}

// validKey rejects ids that a local bucket would resolve outside of its
// directory.
func validKey(id string) error {
	switch {
	case id == "":
		return errors.New("character id must not be empty")
	case strings.ContainsAny(id, `/\`), strings.Contains(id, ".."):
		return errors.Errorf("character id '%s' is not a valid key", id)
	}
	return nil
}

func (s *BucketStore) Put(ctx context.Context, c model.Character) error {
	if err := validKey(c.ID); err != nil {
		return errors.Wrap(err, "cannot store character")
	}

	data, err := json.Marshal(c)
	if err != nil {
		return errors.Wrapf(err, "marshalling character '%s'", c.ID)
	}

	return errors.Wrapf(s.bucket.Put(ctx, c.ID, bytes.NewReader(data)), "putting character '%s'", c.ID)
}

func (s *BucketStore) Get(ctx context.Context, id string) (model.Character, error) {
	if validKey(id) != nil {
		return model.Character{}, errors.Wrapf(ErrNotFound, "character '%s'", id)
	}

	r, err := s.bucket.Get(ctx, id)
	if err != nil {
		if pail.IsKeyNotFoundError(err) {
			return model.Character{}, errors.Wrapf(ErrNotFound, "character '%s'", id)
		}
		return model.Character{}, errors.Wrapf(err, "getting character '%s'", id)
	}

	return decodeCharacter(r, id)
}

func (s *BucketStore) Delete(ctx context.Context, id string) error {
	if validKey(id) != nil {
		return errors.Wrapf(ErrNotFound, "character '%s'", id)
	}

	exists, err := s.exists(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}
	if !exists {
		return errors.Wrapf(ErrNotFound, "character '%s'", id)
	}

	return errors.Wrapf(s.bucket.Remove(ctx, id), "removing character '%s'", id)
}

func (s *BucketStore) List(ctx context.Context) (model.Fellowship, error) {
	iter, err := s.bucket.List(ctx, "")
	if err != nil {
		return nil, errors.Wrap(err, "listing bucket contents")
	}

	out := model.Fellowship{}
	catcher := grip.NewBasicCatcher()
	for iter.Next(ctx) {
		name := iter.Item().Name()
		r, err := s.bucket.Get(ctx, name)
		if err != nil {
			catcher.Wrapf(err, "getting character '%s'", name)
			continue
		}

		c, err := decodeCharacter(r, name)
		if err != nil {
			catcher.Add(err)
			continue
		}
		out = append(out, c)
	}
	catcher.Wrap(iter.Err(), "iterating bucket contents")

	if catcher.HasErrors() {
		return nil, catcher.Resolve()
	}

	return out, nil
}

func (s *BucketStore) exists(ctx context.Context, id string) (bool, error) {
	r, err := s.bucket.Get(ctx, id)
	if err != nil {
		if pail.IsKeyNotFoundError(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, "checking character '%s'", id)
	}
	return true, errors.WithStack(r.Close())
}

func decodeCharacter(r io.ReadCloser, id string) (model.Character, error) {
	defer r.Close()

	c := model.Character{}
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return model.Character{}, errors.Wrapf(err, "decoding character '%s'", id)
	}
	return c, nil
}
