// Package snapshot persists vocabulary state to a self-describing binary
// format.
//
// A snapshot file starts with a fixed header that records the format
// version, the codec name and the compression algorithm, followed by a
// single framed payload block. Files are therefore readable regardless of
// the writer's configuration, and writes to disk are atomic
// (temp file + rename).
package snapshot

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hupe1980/semgo/codec"
)

const (
	// MagicNumber identifies snapshot files (ASCII: "SEM1").
	MagicNumber = 0x53454D31

	// Version is the current file format version.
	Version = 0x00010000
)

// fileHeader is the fixed-size portion of the snapshot header. The codec
// name follows as CodecNameLen raw bytes.
type fileHeader struct {
	Magic        uint32
	Version      uint32
	Compression  uint8
	Padding      [3]byte
	CodecNameLen uint32
}

// EntryState is the serialized form of one vocabulary entry.
type EntryState struct {
	Name    string    `json:"name"`
	Vector  []float64 `json:"vector"`
	Derived bool      `json:"derived,omitempty"`
}

// State is the serialized form of a session's vocabulary.
type State struct {
	Dim     int          `json:"dim"`
	Entries []EntryState `json:"entries"`
}

// Options contains configuration options for writing snapshots.
type Options struct {
	// Codec serializes the payload. Defaults to codec.Default.
	Codec codec.Codec

	// Compression is applied to the serialized payload.
	Compression Compression
}

// DefaultOptions contains the default configuration options.
var DefaultOptions = Options{
	Codec:       codec.Default,
	Compression: CompressionZSTD,
}

// Write serializes the state to w.
func Write(w io.Writer, state *State, optFns ...func(o *Options)) error {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Codec == nil {
		opts.Codec = codec.Default
	}

	payload, err := opts.Codec.Marshal(state)
	if err != nil {
		return fmt.Errorf("snapshot: marshal failed: %w", err)
	}

	block, err := compressBlock(payload, opts.Compression)
	if err != nil {
		return fmt.Errorf("snapshot: compression failed: %w", err)
	}

	name := opts.Codec.Name()
	header := fileHeader{
		Magic:        MagicNumber,
		Version:      Version,
		Compression:  uint8(opts.Compression),
		CodecNameLen: uint32(len(name)),
	}
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return err
	}
	if _, err := io.WriteString(w, name); err != nil {
		return err
	}
	if _, err := w.Write(block); err != nil {
		return err
	}
	return nil
}

// Read deserializes a state previously written with Write. The codec and
// compression algorithm are selected from the file header.
func Read(r io.Reader) (*State, error) {
	var header fileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, err
	}
	if header.Magic != MagicNumber {
		return nil, ErrInvalidMagic
	}
	if header.Version != Version {
		return nil, ErrInvalidVersion
	}
	if header.CodecNameLen > 64 {
		return nil, ErrCorruptHeader
	}

	nameBytes := make([]byte, header.CodecNameLen)
	if _, err := io.ReadFull(r, nameBytes); err != nil {
		return nil, err
	}
	c, ok := codec.ByName(string(nameBytes))
	if !ok {
		return nil, fmt.Errorf("snapshot: unknown codec %q", nameBytes)
	}

	block, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	payload, err := decompressBlock(block, Compression(header.Compression))
	if err != nil {
		return nil, fmt.Errorf("snapshot: decompression failed: %w", err)
	}

	var state State
	if err := c.Unmarshal(payload, &state); err != nil {
		return nil, fmt.Errorf("snapshot: unmarshal failed: %w", err)
	}
	return &state, nil
}

// Save writes the state to a file atomically: the snapshot is written to a
// temp file in the same directory, synced, then renamed over the target.
func Save(path string, state *State, optFns ...func(o *Options)) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	tmp, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	// Match typical file permissions (best-effort).
	_ = tmp.Chmod(0644)

	buf := bufio.NewWriterSize(tmp, 256*1024)
	if err := Write(buf, state, optFns...); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		return err
	}

	// Best-effort: fsync the directory so the rename is durable on POSIX.
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}

	// Success: prevent deferred cleanup from removing the final file.
	tmpName = ""
	return nil
}

// Load reads a state from a snapshot file.
func Load(path string) (*State, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(bufio.NewReaderSize(f, 256*1024))
}
