// Package ldbstore keeps solved MDP value tables and policies on disk in a
// LevelDB database, so that the results of a run can be inspected or
// compared later without solving again.
package ldbstore

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"math"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// ErrRunNotFound is returned when a run has no stored record.
var ErrRunNotFound = errors.New("run not found")

const (
	runPrefix    = "r:"
	valuePrefix  = "v:"
	policyPrefix = "p:"
)

// RunInfo describes how a stored table was produced.
type RunInfo struct {
	Solver     string
	Grid       string
	Discount   float64
	Iterations int
	Created    time.Time
}

// Store is a LevelDB database of runs. Each run has a RunInfo record, a
// table of state values and a table of policy actions, keyed by the string
// form of each state.
type Store struct {
	path  string
	db    *leveldb.DB
	rOpts *opt.ReadOptions
	wOpts *opt.WriteOptions
}

// Open opens (creating if necessary) the store at the given path.
func Open(path string, opts *opt.Options) (*Store, error) {
	db, err := leveldb.OpenFile(path, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "error opening store %s", path)
	}

	return &Store{path: path, db: db}, nil
}

// Close implements io.Closer.
func (s *Store) Close() error {
	return s.db.Close()
}

func runKey(run string) []byte {
	return []byte(runPrefix + run)
}

func tableKey(prefix, run, state string) []byte {
	return []byte(prefix + run + ":" + state)
}

// PutRun records info for run, replacing any previous record.
func (s *Store) PutRun(run string, info RunInfo) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(info); err != nil {
		return errors.Wrap(err, "error encoding run info")
	}

	if err := s.db.Put(runKey(run), buf.Bytes(), s.wOpts); err != nil {
		return errors.Wrapf(err, "error writing run %s", run)
	}

	return nil
}

// Run returns the record for run.
func (s *Store) Run(run string) (RunInfo, error) {
	var info RunInfo
	buf, err := s.db.Get(runKey(run), s.rOpts)
	if err == leveldb.ErrNotFound {
		return info, errors.Wrapf(ErrRunNotFound, "%s", run)
	} else if err != nil {
		return info, errors.Wrapf(err, "error reading run %s", run)
	}

	if err := gob.NewDecoder(bytes.NewReader(buf)).Decode(&info); err != nil {
		return info, errors.Wrapf(err, "error decoding run %s", run)
	}

	return info, nil
}

// Runs returns the ids of all recorded runs, in sorted order.
func (s *Store) Runs() ([]string, error) {
	var runs []string
	iter := s.db.NewIterator(util.BytesPrefix([]byte(runPrefix)), s.rOpts)
	for iter.Next() {
		runs = append(runs, strings.TrimPrefix(string(iter.Key()), runPrefix))
	}

	iter.Release()
	if err := iter.Error(); err != nil {
		return nil, errors.Wrap(err, "error listing runs")
	}

	return runs, nil
}

// PutValues writes the value table of run in a single batch.
func (s *Store) PutValues(run string, values map[string]float64) error {
	batch := new(leveldb.Batch)
	for state, v := range values {
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		batch.Put(tableKey(valuePrefix, run, state), buf[:])
	}

	if err := s.db.Write(batch, s.wOpts); err != nil {
		return errors.Wrapf(err, "error writing values of run %s", run)
	}

	glog.V(1).Infof("Wrote %d values for run %s", len(values), run)
	return nil
}

// Values returns the value table of run.
func (s *Store) Values(run string) (map[string]float64, error) {
	values := make(map[string]float64)
	err := s.scan(valuePrefix, run, func(state string, buf []byte) error {
		if len(buf) != 8 {
			return errors.Errorf("corrupt value for state %s: %d bytes", state, len(buf))
		}

		values[state] = math.Float64frombits(binary.LittleEndian.Uint64(buf))
		return nil
	})

	return values, err
}

// PutPolicy writes the policy table of run in a single batch.
func (s *Store) PutPolicy(run string, policy map[string]string) error {
	batch := new(leveldb.Batch)
	for state, action := range policy {
		batch.Put(tableKey(policyPrefix, run, state), []byte(action))
	}

	if err := s.db.Write(batch, s.wOpts); err != nil {
		return errors.Wrapf(err, "error writing policy of run %s", run)
	}

	glog.V(1).Infof("Wrote %d policy actions for run %s", len(policy), run)
	return nil
}

// Policy returns the policy table of run.
func (s *Store) Policy(run string) (map[string]string, error) {
	policy := make(map[string]string)
	err := s.scan(policyPrefix, run, func(state string, buf []byte) error {
		policy[state] = string(buf)
		return nil
	})

	return policy, err
}

func (s *Store) scan(prefix, run string, fn func(state string, value []byte) error) error {
	tablePrefix := string(tableKey(prefix, run, ""))
	iter := s.db.NewIterator(util.BytesPrefix([]byte(tablePrefix)), s.rOpts)
	defer iter.Release()
	for iter.Next() {
		state := strings.TrimPrefix(string(iter.Key()), tablePrefix)
		if err := fn(state, iter.Value()); err != nil {
			return err
		}
	}

	return errors.Wrapf(iter.Error(), "error reading run %s", run)
}

// DeleteRun removes run and its tables.
func (s *Store) DeleteRun(run string) error {
	batch := new(leveldb.Batch)
	batch.Delete(runKey(run))
	for _, prefix := range []string{valuePrefix, policyPrefix} {
		iter := s.db.NewIterator(util.BytesPrefix(tableKey(prefix, run, "")), s.rOpts)
		for iter.Next() {
			batch.Delete(append([]byte(nil), iter.Key()...))
		}

		iter.Release()
		if err := iter.Error(); err != nil {
			return errors.Wrapf(err, "error reading run %s", run)
		}
	}

	return errors.Wrapf(s.db.Write(batch, s.wOpts), "error deleting run %s", run)
}
