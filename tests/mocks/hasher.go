package mocks

import "errors"

// Hasher is a deterministic stand-in for the bcrypt adapter so tests stay
// fast and can assert on stored hashes.
type Hasher struct {
	FailNextHash error
}

func NewHasher() *Hasher {
	return &Hasher{}
}

func (h *Hasher) Hash(password string) ([]byte, error) {
	if h.FailNextHash != nil {
		err := h.FailNextHash
		h.FailNextHash = nil
		return nil, err
	}
	if password == "" {
		return nil, errors.New("password cannot be empty")
	}

	return []byte("mockhash:" + password), nil
}
