package mmap

import "errors"

// AccessPattern is a hint about how mapped data will be read.
type AccessPattern int

const (
	// AccessDefault gives no advice.
	AccessDefault AccessPattern = iota
	// AccessSequential expects a front-to-back scan.
	AccessSequential
	// AccessRandom expects scattered reads.
	AccessRandom
)

var (
	// ErrClosed is returned when attempting to access a closed mapping.
	ErrClosed = errors.New("mmap: mapping is closed")
	// ErrInvalidSize is returned when the file size cannot be mapped.
	ErrInvalidSize = errors.New("mmap: invalid file size")
	// ErrInvalidOffset is returned for negative read offsets.
	ErrInvalidOffset = errors.New("mmap: invalid offset")
)
