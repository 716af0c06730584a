package database

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/motus-games/motus/internal/cache"
	"github.com/motus-games/motus/internal/database"
	"github.com/motus-games/motus/internal/database/stat/model"
)

const prefix = "stat"

var ErrNotFound = fmt.Errorf("not found")

func New(db *database.DB, cache cache.Cache) *DB {
	return &DB{sDB: db, cache: cache}
}

type DB struct {
	sDB *database.DB

	cache cache.Cache
}

// bucket keys are pseudo-scoped so one View walks a single player's games
func (db *DB) bucket(pseudo string) []byte {
	return []byte(prefix + pseudo)
}

func (db *DB) Add(stat model.Stat) error {
	bytes, err := json.Marshal(stat)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	bucket := db.bucket(stat.Pseudo)
	if err := db.sDB.DB.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucket)
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}

		seq, err := b.NextSequence()
		if err != nil {
			return fmt.Errorf("next sequence: %w", err)
		}

		pk := make([]byte, 8)
		binary.BigEndian.PutUint64(pk, seq)
		return b.Put(pk, bytes)
	}); err != nil {
		return fmt.Errorf("update transaction error: %w", err)
	}

	if db.cache != nil {
		db.cache.Delete(string(bucket))
	}

	return nil
}

func (db *DB) FetchByPseudo(pseudo string) ([]model.Stat, error) {
	bucket := db.bucket(pseudo)
	if db.cache != nil {
		if v, ok := db.cache.Get(string(bucket)); ok {
			return v.([]model.Stat), nil
		}
	}

	var list []model.Stat
	if err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return ErrNotFound
		}

		return b.ForEach(func(_, v []byte) error {
			var stat model.Stat
			if err := json.Unmarshal(v, &stat); err != nil {
				return fmt.Errorf("unmarshal: %w", err)
			}
			list = append(list, stat)
			return nil
		})
	}); err != nil {
		return nil, fmt.Errorf("view transaction error: %w", err)
	}

	if db.cache != nil {
		db.cache.Add(string(bucket), list)
	}

	return list, nil
}

// FetchProfileStat aggregates every stored game of a pseudo into the profile
// view.
func (db *DB) FetchProfileStat(pseudo string) (model.AggregationStat, error) {
	var agg model.AggregationStat

	stats, err := db.FetchByPseudo(pseudo)
	if err != nil {
		return agg, fmt.Errorf("fetch by pseudo: %w", err)
	}

	for _, stat := range stats {
		agg.Games++
		agg.TotalPoints += stat.Points
		agg.WordsFound += stat.WordsFound

		if stat.Completed {
			agg.Wins++
			if agg.BestCompletion == 0 || stat.Completion < agg.BestCompletion {
				agg.BestCompletion = stat.Completion
			}
		}
	}

	if agg.Games > 0 {
		agg.AvgPoints = agg.TotalPoints / agg.Games
	}

	return agg, nil
}
