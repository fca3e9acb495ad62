package config

import (
	"fmt"

	"github.com/MMartini1/endline-tension-meter/pkg/storage"
)

// Store persists Settings on a card. Saves delete the prior record
// and write the complete current one; the rewrite is deliberately not
// atomic across power loss, so a badly timed outage regenerates
// factory defaults on the next boot.
type Store struct {
	card storage.Card
}

func NewStore(card storage.Card) *Store {
	return &Store{card: card}
}

// Load reads the persisted record, starting from defaults so missing
// keys keep their factory values. On first run it writes the full
// default record and re-reads it as a self-consistency check.
func (st *Store) Load() (Settings, error) {
	if !st.card.Exists(FileName) {
		if err := st.Save(Default()); err != nil {
			return Default(), fmt.Errorf("failed to create default settings: %w", err)
		}
		return st.Load()
	}

	s := Default()
	f, err := st.card.Open(FileName)
	if err != nil {
		return s, fmt.Errorf("failed to open settings: %w", err)
	}
	defer f.Close()
	s.Parse(f)
	return s, nil
}

// Save replaces the persisted record with s.
func (st *Store) Save(s Settings) error {
	if st.card.Exists(FileName) {
		if err := st.card.Remove(FileName); err != nil {
			return fmt.Errorf("failed to remove old settings: %w", err)
		}
	}
	f, err := st.card.Create(FileName)
	if err != nil {
		return fmt.Errorf("failed to create settings file: %w", err)
	}
	if err := s.Render(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("failed to sync settings: %w", err)
	}
	return f.Close()
}
