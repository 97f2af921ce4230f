package mines

import (
	"cmp"
	"encoding/json"
	"slices"
)

// CoordSet is a set of cells. The zero value is ready for reads; writes
// need a set built with NewCoordSet or Clone.
type CoordSet map[Coordinate]struct{}

func NewCoordSet(cs ...Coordinate) CoordSet {
	s := make(CoordSet, len(cs))
	for _, c := range cs {
		s[c] = struct{}{}
	}
	return s
}

// Insert adds c and reports whether it was not yet present.
func (s CoordSet) Insert(c Coordinate) bool {
	if _, ok := s[c]; ok {
		return false
	}
	s[c] = struct{}{}
	return true
}

func (s CoordSet) Remove(c Coordinate) bool {
	if _, ok := s[c]; !ok {
		return false
	}
	delete(s, c)
	return true
}

func (s CoordSet) Contains(c Coordinate) bool {
	_, ok := s[c]
	return ok
}

func (s CoordSet) Len() int {
	return len(s)
}

func (s CoordSet) Clone() CoordSet {
	c := make(CoordSet, len(s))
	for k := range s {
		c[k] = struct{}{}
	}
	return c
}

// Union adds every member of other to s.
func (s CoordSet) Union(other CoordSet) {
	for k := range other {
		s[k] = struct{}{}
	}
}

func compareCoordinates(a, b Coordinate) int {
	if c := cmp.Compare(a.Row, b.Row); c != 0 {
		return c
	}
	return cmp.Compare(a.Column, b.Column)
}

// Sorted lists members in row-major order.
func (s CoordSet) Sorted() []Coordinate {
	result := make([]Coordinate, 0, len(s))
	for k := range s {
		result = append(result, k)
	}
	slices.SortFunc(result, compareCoordinates)
	return result
}

func (s CoordSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *CoordSet) UnmarshalJSON(data []byte) error {
	var cs []Coordinate
	if err := json.Unmarshal(data, &cs); err != nil {
		return err
	}
	*s = NewCoordSet(cs...)
	return nil
}
