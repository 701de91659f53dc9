// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"fmt"
	"slices"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/strindex/core"
)

// recordFormatVersion prefixes every encoded record.
const recordFormatVersion = 1

// StoredRecordMUS encodes core.StoredRecord values with mus-go.
//
// Layout: version, id, value, created_at (unix micros), length,
// is_palindrome, unique_characters, word_count, then the frequency map as
// a count followed by (rune, count) pairs in ascending rune order.
// The content hash is not stored separately; it equals the id.
var StoredRecordMUS = storedRecordMUS{}

type storedRecordMUS struct{}

// Marshal writes r into bs, which must have at least Size(r) bytes.
func (storedRecordMUS) Marshal(r core.StoredRecord, bs []byte) (n int) {
	n = varint.Int.Marshal(recordFormatVersion, bs)
	n += ord.String.Marshal(r.ID, bs[n:])
	n += ord.String.Marshal(r.Value, bs[n:])
	n += varint.Int64.Marshal(r.CreatedAt.UnixMicro(), bs[n:])
	n += varint.Int.Marshal(r.Properties.Length, bs[n:])
	n += ord.Bool.Marshal(r.Properties.IsPalindrome, bs[n:])
	n += varint.Int.Marshal(r.Properties.UniqueCharacters, bs[n:])
	n += varint.Int.Marshal(r.Properties.WordCount, bs[n:])
	keys := sortedRunes(r.Properties.CharacterFrequency)
	n += varint.Int.Marshal(len(keys), bs[n:])
	for _, k := range keys {
		n += varint.Int32.Marshal(k, bs[n:])
		n += varint.Int.Marshal(r.Properties.CharacterFrequency[k], bs[n:])
	}
	return n
}

// Size returns the encoded size of r.
func (storedRecordMUS) Size(r core.StoredRecord) (size int) {
	size = varint.Int.Size(recordFormatVersion)
	size += ord.String.Size(r.ID)
	size += ord.String.Size(r.Value)
	size += varint.Int64.Size(r.CreatedAt.UnixMicro())
	size += varint.Int.Size(r.Properties.Length)
	size += ord.Bool.Size(r.Properties.IsPalindrome)
	size += varint.Int.Size(r.Properties.UniqueCharacters)
	size += varint.Int.Size(r.Properties.WordCount)
	size += varint.Int.Size(len(r.Properties.CharacterFrequency))
	for k, v := range r.Properties.CharacterFrequency {
		size += varint.Int32.Size(k)
		size += varint.Int.Size(v)
	}
	return size
}

// Unmarshal decodes a record from bs.
func (storedRecordMUS) Unmarshal(bs []byte) (r core.StoredRecord, n int, err error) {
	var (
		m       int
		version int
		micros  int64
		count   int
	)
	if version, m, err = varint.Int.Unmarshal(bs); err != nil {
		return
	}
	n += m
	if version != recordFormatVersion {
		err = fmt.Errorf("%w: unsupported record version %d", ErrSerializationFailed, version)
		return
	}
	if r.ID, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	if r.Value, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	if micros, m, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	r.CreatedAt = time.UnixMicro(micros).UTC()
	if r.Properties.Length, m, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	if r.Properties.IsPalindrome, m, err = ord.Bool.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	if r.Properties.UniqueCharacters, m, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	if r.Properties.WordCount, m, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	if count, m, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	if count < 0 || count > len(bs)-n {
		err = fmt.Errorf("%w: frequency map length %d", ErrTruncatedData, count)
		return
	}
	r.Properties.CharacterFrequency = make(core.FrequencyMap, count)
	for range count {
		var (
			k rune
			v int
		)
		if k, m, err = varint.Int32.Unmarshal(bs[n:]); err != nil {
			return
		}
		n += m
		if v, m, err = varint.Int.Unmarshal(bs[n:]); err != nil {
			return
		}
		n += m
		r.Properties.CharacterFrequency[k] = v
	}
	r.Properties.ContentHash = r.ID
	return
}

func sortedRunes(m core.FrequencyMap) []rune {
	keys := make([]rune, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// MarshalStoredRecord serializes a StoredRecord to bytes.
func MarshalStoredRecord(record *core.StoredRecord) []byte {
	buf := make([]byte, StoredRecordMUS.Size(*record))
	StoredRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalStoredRecord deserializes a StoredRecord from bytes.
func UnmarshalStoredRecord(data []byte) (*core.StoredRecord, error) {
	record, _, err := StoredRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// MarshalSequence serializes an insertion sequence number.
func MarshalSequence(seq uint64) []byte {
	buf := make([]byte, varint.Uint64.Size(seq))
	varint.Uint64.Marshal(seq, buf)
	return buf
}

// UnmarshalSequence deserializes an insertion sequence number.
func UnmarshalSequence(data []byte) (uint64, error) {
	seq, _, err := varint.Uint64.Unmarshal(data)
	return seq, err
}
