package store

import "time"

// Pairing is the persisted bridge pairing: which bridge we talk to and the
// allow-listed username obtained from CreateUser. This is the state the
// applet keeps between runs; clearing it is what "unpair" means.
type Pairing struct {
	Bridge   string    `json:"bridge"`
	Username string    `json:"username"`
	PairedAt time.Time `json:"paired_at"`
}

// Discovery is the persisted result of the last bridge discovery run.
type Discovery struct {
	Addresses []string  `json:"addresses"`
	FoundAt   time.Time `json:"found_at"`
}

const currentKey = "current"

// SavePairing stores the active pairing.
func (s *Store) SavePairing(p Pairing) error {
	return s.Put(BucketPairing, currentKey, p, 0)
}

// LoadPairing returns the active pairing, or nil when the panel has never
// been paired (or has been unpaired).
func (s *Store) LoadPairing() (*Pairing, error) {
	var p Pairing
	ok, err := s.Get(BucketPairing, currentKey, &p)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// ClearPairing forgets the stored pairing and any cached catalog that was
// loaded through it.
func (s *Store) ClearPairing() error {
	if err := s.Clear(BucketPairing); err != nil {
		return err
	}
	return s.Clear(BucketCatalog)
}

// SaveDiscovery stores the last discovery result.
func (s *Store) SaveDiscovery(d Discovery) error {
	return s.Put(BucketDiscovery, currentKey, d, 0)
}

// LoadDiscovery returns the last discovery result, or nil if discovery has
// never run.
func (s *Store) LoadDiscovery() (*Discovery, error) {
	var d Discovery
	ok, err := s.Get(BucketDiscovery, currentKey, &d)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &d, nil
}
