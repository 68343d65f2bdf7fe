// Package timerstore persists the pairing cooldown expiry across restarts.
//
// The value lives under common.TimerStorageKey as JSON {"endTime": ms|null}.
// An elapsed expiry is left in place; readers clamp remaining time to zero.
package timerstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/gzapadmin/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gzapadmin/internal/common"
)

type state struct {
	EndTime *int64 `json:"endTime"`
}

type Store struct {
	repo metadata.Repository
}

func New(repo metadata.Repository) *Store {
	return &Store{repo: repo}
}

// EndTime returns the stored expiry in epoch milliseconds. ok is false when
// nothing was ever stored or the value was cleared.
func (s *Store) EndTime(ctx context.Context) (int64, bool, error) {
	raw, found, err := s.repo.Get(ctx, common.TimerStorageKey)
	if err != nil {
		return 0, false, err
	}
	if !found {
		return 0, false, nil
	}

	var st state
	if err := json.Unmarshal(raw, &st); err != nil {
		return 0, false, fmt.Errorf("corrupt %s value: %w", common.TimerStorageKey, err)
	}
	if st.EndTime == nil {
		return 0, false, nil
	}
	return *st.EndTime, true, nil
}

func (s *Store) SetEndTime(ctx context.Context, endTime int64) error {
	return s.write(ctx, state{EndTime: &endTime})
}

func (s *Store) ClearEndTime(ctx context.Context) error {
	return s.write(ctx, state{})
}

func (s *Store) write(ctx context.Context, st state) error {
	b, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return s.repo.Set(ctx, common.TimerStorageKey, b)
}
