package store

import (
	"errors"
	"fmt"

	"bookban-guard/internal/core/ports"
)

// ErrNotContainer is returned by Unwrap on items that hold no inventory.
var ErrNotContainer = errors.New("store: item is not a container")

var _ ports.Item = (*Stack)(nil)

// Stack is one item stack as the host stores it. Books keep their pages
// inline; container items keep their inventory encoded in State.
type Stack struct {
	Material string   `json:"material"`
	Amount   int      `json:"amount,omitempty"`
	Title    string   `json:"title,omitempty"`
	Author   string   `json:"author,omitempty"`
	Text     []string `json:"pages,omitempty"`
	State    []byte   `json:"state,omitempty"`
}

// NewBook creates a written book with the given pages.
func NewBook(title string, pages ...string) *Stack {
	return &Stack{Material: WrittenBook, Amount: 1, Title: title, Text: pages}
}

// NewContainer creates a container item holding inv. The inventory is
// encoded immediately; later changes to inv are not reflected.
func NewContainer(material string, inv *Inventory) (*Stack, error) {
	if !IsContainerMaterial(material) {
		return nil, fmt.Errorf("%w: %s", ErrNotContainer, material)
	}
	s := &Stack{Material: material, Amount: 1}
	if inv != nil {
		state, err := EncodeState(inv)
		if err != nil {
			return nil, err
		}
		s.State = state
	}
	return s, nil
}

func (s *Stack) IsContainer() bool {
	return IsContainerMaterial(s.Material)
}

func (s *Stack) HasPages() bool {
	return IsBookMaterial(s.Material)
}

func (s *Stack) Pages() []string {
	return s.Text
}

// Contents decodes the nested inventory. Containers without state yield an
// empty inventory of the material's catalog size.
func (s *Stack) Contents() (*Inventory, error) {
	if !s.IsContainer() {
		return nil, fmt.Errorf("%w: %s", ErrNotContainer, s.Material)
	}
	if len(s.State) == 0 {
		return NewInventory(ContainerSize(s.Material)), nil
	}
	return DecodeState(s.State)
}

// Unwrap decodes a fresh copy of the nested inventory. Changes to it become
// part of the stack only once the returned write-back runs.
func (s *Stack) Unwrap() (ports.Slots, ports.WriteBack, error) {
	inv, err := s.Contents()
	if err != nil {
		return nil, nil, err
	}
	writeBack := func() error {
		state, err := EncodeState(inv)
		if err != nil {
			return fmt.Errorf("store: write back %s: %w", s.Material, err)
		}
		s.State = state
		return nil
	}
	return inv, writeBack, nil
}
